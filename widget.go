package scrollbg

import (
	"image"
	"io"
	"math"
	"time"

	xdraw "golang.org/x/image/draw"
)

// ScrollImage is a background that tiles one image along an axis and
// scrolls it every frame, clipped to a rounded rectangle inside the
// viewport padding, with an optional mask drawn on top.
//
// A ScrollImage is driven by its host: the host reports the viewport with
// Resize, calls Draw for each frame and implements Invalidator so the widget
// can request the next one. All methods must be called from the host's draw
// goroutine.
//
// No method returns an error: undecodable or empty images are logged and
// treated as absent, and a widget with nothing valid to draw draws nothing.
type ScrollImage struct {
	engine *ScrollEngine
	clip   *RoundedClipCompositor
	layer  *Layer

	invalidator Invalidator
	children    []Drawer

	source   image.Image
	mask     image.Image
	viewport Viewport
	axis     Axis
}

// New creates a widget from cfg. Nothing is configured until the host
// reports a viewport with Resize.
func New(cfg Config, opts ...Option) *ScrollImage {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w := &ScrollImage{
		engine:      NewScrollEngine(cfg.speed()),
		clip:        NewRoundedClipCompositor(o.strategy),
		layer:       NewLayer(0, 0, 1),
		invalidator: o.invalidator,
		children:    o.children,
		source:      usable(cfg.Source),
		mask:        usable(cfg.Mask),
		axis:        cfg.Axis,
	}
	w.engine.legacyWrap = cfg.LegacyWrap
	if cfg.ScrollDuration > 0 {
		w.engine.SetDuration(cfg.ScrollDuration)
	}
	r := cfg.radii()
	w.clip.SetRadii(r[TopLeft], r[TopRight], r[BottomRight], r[BottomLeft])
	if cfg.AutoStart {
		w.engine.Start()
	}
	return w
}

// Resize reports a new viewport. The clip is rebuilt and, when a source
// image exists, the tiling is derived again for the new size.
func (w *ScrollImage) Resize(vp Viewport) {
	w.viewport = vp
	w.clip.OnResize(vp.Width, vp.Height, vp.Padding)
	w.configure()
	w.invalidator.Invalidate()
}

// Viewport returns the last viewport reported by Resize.
func (w *ScrollImage) Viewport() Viewport {
	return w.viewport
}

func (w *ScrollImage) configure() {
	if w.source == nil || w.viewport.Empty() {
		return
	}
	if _, err := w.engine.Configure(w.source, w.viewport, w.axis); err != nil {
		// The old tiling belongs to another viewport or axis; draw nothing.
		w.engine.Release()
		Logger().Warn("scrollbg: cannot configure scrolling", "err", err)
	}
}

// SetImage replaces the source image. A running scroll is stopped, the
// tiling re-derived, and the scroll restarted. A nil or empty image clears
// the background. Passing the same image again after changing its pixels
// rescales it.
func (w *ScrollImage) SetImage(img image.Image) {
	running := w.engine.Running()
	if running {
		w.engine.Stop()
	}

	w.source = usable(img)
	w.engine.Release()
	w.configure()

	if running {
		w.Start()
	}
	w.invalidator.Invalidate()
}

// SetImageFrom decodes r and uses the result as the source image. Data that
// cannot be decoded clears the background.
func (w *ScrollImage) SetImageFrom(r io.Reader) {
	img, err := LoadImage(r)
	if err != nil {
		Logger().Warn("scrollbg: dropping source image", "err", err)
	}
	w.SetImage(img)
}

// Start resumes scrolling from the current offset. Calling Start on a
// running widget does nothing.
func (w *ScrollImage) Start() {
	if !w.engine.Start() {
		return
	}
	Logger().Info("scrollbg: scroll started", "offset", w.engine.State().Offset)
	w.invalidator.Invalidate()
}

// Stop freezes the offset. The current frame stays on screen.
func (w *ScrollImage) Stop() {
	if !w.engine.Stop() {
		return
	}
	Logger().Info("scrollbg: scroll stopped", "offset", w.engine.State().Offset)
}

// Running reports whether the widget is scrolling.
func (w *ScrollImage) Running() bool {
	return w.engine.Running()
}

// SetAxis switches the scroll axis. The offset restarts at 0 and the tiling
// is derived again from the source image.
func (w *ScrollImage) SetAxis(axis Axis) {
	w.axis = axis
	w.engine.ResetOffset()
	w.configure()
	Logger().Info("scrollbg: axis changed", "axis", axis)
	w.invalidator.Invalidate()
}

// Axis returns the scroll axis.
func (w *ScrollImage) Axis() Axis {
	return w.axis
}

// SetSpeed sets the per-frame step in pixels and drops any scroll duration.
func (w *ScrollImage) SetSpeed(pixelsPerFrame int) {
	w.engine.SetSpeed(float64(pixelsPerFrame))
	w.invalidator.Invalidate()
}

// SetScrollDuration sets the time one tile takes to scroll past. A
// non-positive d goes back to the per-frame speed.
func (w *ScrollImage) SetScrollDuration(d time.Duration) {
	w.engine.SetDuration(d)
	w.invalidator.Invalidate()
}

// SetMaskImage sets the overlay drawn at the origin each frame; nil removes it.
func (w *ScrollImage) SetMaskImage(img image.Image) {
	w.mask = usable(img)
	w.invalidator.Invalidate()
}

// SetMaskFrom decodes r and uses the result as the mask. Data that cannot
// be decoded removes the mask.
func (w *ScrollImage) SetMaskFrom(r io.Reader) {
	img, err := LoadImage(r)
	if err != nil {
		Logger().Warn("scrollbg: dropping mask image", "err", err)
	}
	w.SetMaskImage(img)
}

// MaskImage returns the current mask, or nil.
func (w *ScrollImage) MaskImage() image.Image {
	return w.mask
}

// SetUniformRadius sets every corner radius to r pixels.
func (w *ScrollImage) SetUniformRadius(r int) {
	w.clip.SetUniform(float64(r))
	w.invalidator.Invalidate()
}

// SetCornerRadius sets one corner radius to r pixels.
func (w *ScrollImage) SetCornerRadius(c Corner, r int) {
	w.clip.SetCorner(c, Uniform(float64(r)))
	w.invalidator.Invalidate()
}

// Radii returns the corner radii.
func (w *ScrollImage) Radii() CornerRadii {
	return w.clip.Radii()
}

// Contains reports whether pixel (x, y) is inside the rounded rectangle.
func (w *ScrollImage) Contains(x, y int) bool {
	return w.clip.Contains(x, y)
}

// AddChild adds content drawn above the background and mask.
func (w *ScrollImage) AddChild(d Drawer) {
	if d == nil {
		return
	}
	w.children = append(w.children, d)
	w.invalidator.Invalidate()
}

// State returns the scroll state.
func (w *ScrollImage) State() ScrollState {
	s := w.engine.State()
	s.Axis = w.axis
	return s
}

// Draw renders one frame onto dst and, while scrolling, requests the next.
//
// The frame is built in an offscreen layer: the offset advances, tiles are
// drawn inside the clip bounds, then the mask and the children. The
// compositor then cuts the layer to the rounded rectangle and the layer is
// merged onto dst with source-over.
func (w *ScrollImage) Draw(dst *Pixmap) {
	vp := w.viewport
	if vp.Empty() {
		return
	}

	layer := w.layer.Begin(vp.Width, vp.Height)
	clip := w.clip.ClipForDraw()

	tile := w.engine.Tile()
	configured := tile != nil && w.engine.Configured()
	if configured {
		if w.engine.Running() {
			w.engine.Advance()
		}
		w.drawTiles(layer, tile, clip.Bounds)
	}

	if w.mask != nil {
		mb := w.mask.Bounds()
		xdraw.Draw(layer.Image(), clip.Bounds, w.mask, mb.Min.Add(clip.Bounds.Min), xdraw.Over)
	}

	for _, c := range w.children {
		c.Draw(layer)
	}

	w.clip.CompositeMask(layer)
	w.layer.CompositeOnto(dst)

	if configured && w.engine.Running() {
		w.scheduleNext()
	}
}

// drawTiles draws every tile position clipped to bounds. Positions are
// floored so neighbouring tiles stay exactly one tile apart.
func (w *ScrollImage) drawTiles(dst *Pixmap, tile *image.RGBA, bounds image.Rectangle) {
	vertical := w.engine.State().Axis == Vertical
	tb := tile.Bounds()
	for _, pos := range w.engine.TilePositions() {
		p := int(math.Floor(pos))
		at := image.Pt(p, 0)
		if vertical {
			at = image.Pt(0, p)
		}
		r := tb.Add(at).Intersect(bounds)
		if r.Empty() {
			continue
		}
		xdraw.Draw(dst.Image(), r, tile, r.Min.Sub(at), xdraw.Over)
	}
}

func (w *ScrollImage) scheduleNext() {
	if w.engine.Duration() > 0 {
		w.invalidator.InvalidateAfter(FrameDelay)
		return
	}
	w.invalidator.Invalidate()
}
