package scrollbg

import (
	"fmt"
	"image"
	"iter"
	"math"
	"reflect"
	"sync/atomic"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/scrollbg/internal/tilecache"
)

// frameIntervalMillis is the redraw period a scroll duration is spread over.
const frameIntervalMillis = 16.66

// FrameDelay is the fixed delay between frames when a scroll duration is set.
const FrameDelay = 16 * time.Millisecond

// scaledTiles is how many scaled sizes of one source are kept.
const scaledTiles = 4

// ScrollState is a snapshot of a ScrollEngine.
type ScrollState struct {
	// Offset is the translation applied to every tile along the axis.
	// It stays in (-TileSize, 0].
	Offset float64

	// Step is the distance Offset moves per frame.
	Step float64

	Axis Axis

	// TileSize is the extent of one scaled tile along the axis.
	TileSize int

	// TileCount is the number of regular tiles: viewportExtent/TileSize + 1.
	TileCount int

	Running bool
}

// ScrollEngine owns the scroll offset and tile geometry for one axis.
//
// Configure, Advance, Start and Stop must be called from a single goroutine
// (the host's draw loop). Tile may be called from any goroutine: the scaled
// tile is published with an atomic swap, so a reader sees either the old or
// the new bitmap, never a partially built one.
type ScrollEngine struct {
	tile atomic.Pointer[image.RGBA]

	source image.Image
	scaled *tilecache.Cache

	axis     Axis
	viewport Viewport

	offset float64
	step   float64
	speed  float64

	duration time.Duration

	tileSize  int
	tileCount int

	running    bool
	legacyWrap bool
}

// NewScrollEngine creates an unconfigured engine advancing speed pixels per frame.
func NewScrollEngine(speed float64) *ScrollEngine {
	return &ScrollEngine{
		speed:  speed,
		step:   speed,
		scaled: tilecache.New(scaledTiles),
	}
}

// Configure scales img so its cross-axis extent fills the viewport, then derives
// the tile size and count for axis. The offset restarts at 0.
//
// Scaled tiles of the current image are cached by size, so switching back to
// an earlier axis or viewport does not scale again. Images are treated as
// immutable: after changing pixels in place, call Release before Configure.
//
// It returns ErrInvalidInput for an empty viewport or image; the engine then
// keeps its previous configuration.
func (e *ScrollEngine) Configure(img image.Image, vp Viewport, axis Axis) (ScrollState, error) {
	if vp.Empty() {
		return e.State(), fmt.Errorf("%w: empty viewport %dx%d", ErrInvalidInput, vp.Width, vp.Height)
	}
	if img == nil || img.Bounds().Empty() {
		return e.State(), fmt.Errorf("%w: empty source image", ErrInvalidInput)
	}

	size := crossSize(img.Bounds(), vp, axis)
	if size.X <= 0 || size.Y <= 0 {
		return e.State(), fmt.Errorf("%w: image %v scales to nothing in %dx%d",
			ErrInvalidInput, img.Bounds().Size(), vp.Width, vp.Height)
	}

	if !sameImage(e.source, img) {
		e.scaled.Reset()
		e.source = img
	}
	tile := e.scaled.GetOrCreate(size, func() *image.RGBA {
		return scale(img, size)
	})

	along, _ := vp.extent(axis)
	tileSize := size.X
	if axis == Vertical {
		tileSize = size.Y
	}

	e.tile.Store(tile)
	e.axis = axis
	e.viewport = vp
	e.tileSize = tileSize
	e.tileCount = along/tileSize + 1
	e.offset = 0
	e.applyDuration()

	Logger().Debug("scrollbg: configured",
		"axis", axis,
		"viewport", fmt.Sprintf("%dx%d", vp.Width, vp.Height),
		"tileSize", e.tileSize,
		"tileCount", e.tileCount,
		"step", e.step)

	return e.State(), nil
}

// crossSize returns the size of src scaled, aspect preserved, so that its
// extent across axis equals the viewport's.
func crossSize(src image.Rectangle, vp Viewport, axis Axis) image.Point {
	if axis == Vertical {
		return image.Pt(vp.Width, vp.Width*src.Dy()/src.Dx())
	}
	return image.Pt(vp.Height*src.Dx()/src.Dy(), vp.Height)
}

func scale(img image.Image, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// sameImage reports whether a and b are the same image value. Images of
// non-comparable types never match.
func sameImage(a, b image.Image) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	t := reflect.TypeOf(a)
	if t != reflect.TypeOf(b) || !t.Comparable() {
		return false
	}
	return a == b
}

// SetSpeed sets the per-frame step directly and clears any scroll duration.
func (e *ScrollEngine) SetSpeed(pixelsPerFrame float64) {
	e.speed = pixelsPerFrame
	e.step = pixelsPerFrame
	e.duration = 0
}

// SetDuration makes one full tile scroll past in d, assuming a redraw every
// 16.66ms. The step depends on the tile size, so it is derived again on every
// Configure. A non-positive d restores the last explicit speed.
func (e *ScrollEngine) SetDuration(d time.Duration) {
	if d <= 0 {
		e.duration = 0
		e.step = e.speed
		return
	}
	e.duration = d
	e.applyDuration()
}

// Duration returns the configured scroll duration, or 0 when speed-driven.
func (e *ScrollEngine) Duration() time.Duration {
	return e.duration
}

func (e *ScrollEngine) applyDuration() {
	if e.duration <= 0 || e.tileSize <= 0 {
		return
	}
	frames := e.duration.Seconds() * (1000 / frameIntervalMillis)
	e.step = float64(e.tileSize) / frames
}

// Advance moves the offset one step and returns it.
//
// The offset wraps by whole tiles so it always stays in (-TileSize, 0]; since
// the tiling is periodic, the wrap is invisible. With legacy wrapping the reset
// is decided on the offset before the step is taken, which lets the offset
// reach up to one step past -TileSize before it snaps back to 0. That rule
// only resets a decreasing offset, so a zero or negative step always uses the
// modular wrap.
func (e *ScrollEngine) Advance() float64 {
	if e.tileSize <= 0 {
		return e.offset
	}
	size := float64(e.tileSize)

	if e.legacyWrap && e.step > 0 {
		if size+e.offset <= 0 {
			e.offset = 0
		}
		e.offset -= e.step
		return e.offset
	}

	d := math.Mod(e.step-e.offset, size)
	if d < 0 {
		d += size
	}
	if d >= size || d == 0 {
		e.offset = 0
	} else {
		e.offset = -d
	}
	return e.offset
}

// TilePositions yields (index, position along the axis) for every tile that
// must be drawn this frame. It snapshots the current state; nothing carries
// over between calls.
//
// The regular tiles sit at i*TileSize+Offset. One more tile follows when the
// regular ones would stop short of the viewport edge at the current offset.
func (e *ScrollEngine) TilePositions() iter.Seq2[int, float64] {
	size, count, offset := e.tileSize, e.tileCount, e.offset
	along, _ := e.viewport.extent(e.axis)

	return func(yield func(int, float64) bool) {
		if size <= 0 {
			return
		}
		for i := 0; i < count; i++ {
			if !yield(i, float64(i*size)+offset) {
				return
			}
		}
		if float64(size*count-along) < math.Abs(offset) {
			yield(count, float64(count*size)+offset)
		}
	}
}

// ResetOffset moves the tiling back to its starting position.
func (e *ScrollEngine) ResetOffset() {
	e.offset = 0
}

// Release drops the scaled tiles and the tiling geometry. The engine is
// unconfigured afterwards and draws nothing until the next Configure.
func (e *ScrollEngine) Release() {
	e.tile.Store(nil)
	e.scaled.Reset()
	e.source = nil
	e.tileSize = 0
	e.tileCount = 0
	e.offset = 0
}

// Start marks the engine running. It reports whether the state changed.
func (e *ScrollEngine) Start() bool {
	if e.running {
		return false
	}
	e.running = true
	return true
}

// Stop freezes the offset. It reports whether the state changed.
func (e *ScrollEngine) Stop() bool {
	if !e.running {
		return false
	}
	e.running = false
	return true
}

// Running reports whether Advance should be called each frame.
func (e *ScrollEngine) Running() bool {
	return e.running
}

// Configured reports whether a tile exists to draw.
func (e *ScrollEngine) Configured() bool {
	return e.tileSize > 0
}

// Tile returns the scaled tile, or nil before the first successful Configure.
func (e *ScrollEngine) Tile() *image.RGBA {
	return e.tile.Load()
}

// State returns a snapshot of the engine.
func (e *ScrollEngine) State() ScrollState {
	return ScrollState{
		Offset:    e.offset,
		Step:      e.step,
		Axis:      e.axis,
		TileSize:  e.tileSize,
		TileCount: e.tileCount,
		Running:   e.running,
	}
}
