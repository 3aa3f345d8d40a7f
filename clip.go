package scrollbg

import (
	"fmt"
	"image"
	"math"
)

// CompositeStrategy selects how CompositeMask removes content outside the
// rounded rectangle. Both strategies produce identical pixels; pick the one
// the target backend handles without seams.
type CompositeStrategy uint8

const (
	// ClipIn fills the clip coverage with destination-in.
	ClipIn CompositeStrategy = iota
	// CutOut fills the layer rectangle minus the clip with destination-out.
	CutOut
)

// String returns the strategy name.
func (s CompositeStrategy) String() string {
	switch s {
	case ClipIn:
		return "clip-in"
	case CutOut:
		return "cut-out"
	default:
		return fmt.Sprintf("CompositeStrategy(%d)", uint8(s))
	}
}

// ParseCompositeStrategy parses "clip-in" or "cut-out".
func ParseCompositeStrategy(s string) (CompositeStrategy, error) {
	switch s {
	case "clip-in", "in", "":
		return ClipIn, nil
	case "cut-out", "out":
		return CutOut, nil
	}
	return ClipIn, fmt.Errorf("%w: unknown composite strategy %q", ErrInvalidInput, s)
}

// Clip is the region content drawing is constrained to.
type Clip struct {
	// Path is the rounded rectangle outline.
	Path *Path
	// Bounds is the smallest pixel rectangle containing Path, within the viewport.
	Bounds image.Rectangle
}

// RoundedClipCompositor clips a rendered layer to a rounded rectangle inset
// by the viewport padding.
type RoundedClipCompositor struct {
	strategy CompositeStrategy
	radii    CornerRadii

	width, height int
	padding       Insets

	rect    Rect
	path    *Path
	region  *Mask
	outside *Mask
}

// NewRoundedClipCompositor creates a compositor with square corners.
func NewRoundedClipCompositor(strategy CompositeStrategy) *RoundedClipCompositor {
	return &RoundedClipCompositor{
		strategy: strategy,
		path:     NewPath(),
		region:   NewMask(0, 0),
	}
}

// Strategy returns the compositing strategy chosen at construction.
func (c *RoundedClipCompositor) Strategy() CompositeStrategy {
	return c.strategy
}

// SetRadii sets all four corners. Negative components clamp to 0.
func (c *RoundedClipCompositor) SetRadii(topLeft, topRight, bottomRight, bottomLeft Radius) {
	c.radii = CornerRadii{
		TopLeft:     topLeft.clamped(),
		TopRight:    topRight.clamped(),
		BottomRight: bottomRight.clamped(),
		BottomLeft:  bottomLeft.clamped(),
	}
	c.rebuild()
}

// SetCorner sets one corner. Negative components clamp to 0.
func (c *RoundedClipCompositor) SetCorner(corner Corner, r Radius) {
	if int(corner) >= len(c.radii) {
		return
	}
	c.radii[corner] = r.clamped()
	c.rebuild()
}

// SetUniform sets every corner to a circular radius r.
func (c *RoundedClipCompositor) SetUniform(r float64) {
	u := Uniform(r).clamped()
	c.SetRadii(u, u, u, u)
}

// Radii returns the current corner radii.
func (c *RoundedClipCompositor) Radii() CornerRadii {
	return c.radii
}

// OnResize recomputes the padded content rectangle
// [left, top, width-right, height-bottom] and rebuilds the clip path and
// hit-test region from it.
func (c *RoundedClipCompositor) OnResize(width, height int, padding Insets) {
	c.width, c.height = width, height
	c.padding = padding
	c.rect = Rect{
		X: float64(padding.Left),
		Y: float64(padding.Top),
		W: float64(width - padding.Right - padding.Left),
		H: float64(height - padding.Bottom - padding.Top),
	}
	c.rebuild()
}

func (c *RoundedClipCompositor) rebuild() {
	c.path.Clear()
	c.path.RoundedRectangle(c.rect, c.radii)
	c.region = c.path.Rasterize(c.width, c.height)
	c.outside = nil
}

// ContentRect returns the padded content rectangle.
func (c *RoundedClipCompositor) ContentRect() Rect {
	return c.rect
}

// ClipForDraw returns the clip to apply before content is drawn.
func (c *RoundedClipCompositor) ClipForDraw() Clip {
	b := c.path.Bounds()
	r := image.Rect(
		int(math.Floor(b.X)), int(math.Floor(b.Y)),
		int(math.Ceil(b.Right())), int(math.Ceil(b.Bottom())),
	).Intersect(image.Rect(0, 0, c.width, c.height))
	return Clip{Path: c.path, Bounds: r}
}

// Region returns the hit-test coverage of the rounded rectangle.
func (c *RoundedClipCompositor) Region() *Mask {
	return c.region
}

// Contains reports whether pixel (x, y) lies in the rounded rectangle. An
// edge pixel counts as inside when at least half of it is covered, so the
// answer matches a non-antialiased hit test.
func (c *RoundedClipCompositor) Contains(x, y int) bool {
	return c.region.At(x, y) >= 128
}

// CompositeMask removes everything in layer that lies outside the rounded
// rectangle, anti-aliasing the corners. Content drawn outside the nominal
// rectangle is cut as well. A layer whose size differs from the last
// OnResize triggers a rebuild at the layer's size.
func (c *RoundedClipCompositor) CompositeMask(layer *Pixmap) {
	if layer.Width() != c.width || layer.Height() != c.height {
		c.OnResize(layer.Width(), layer.Height(), c.padding)
	}

	switch c.strategy {
	case CutOut:
		fillMask(layer, c.complement(), BlendDestinationOut)
	default:
		fillMask(layer, c.region, BlendDestinationIn)
	}
}

// complement returns the coverage of the layer rectangle minus the clip path.
func (c *RoundedClipCompositor) complement() *Mask {
	if c.outside == nil {
		c.outside = c.region.Clone()
		c.outside.Invert()
	}
	return c.outside
}
