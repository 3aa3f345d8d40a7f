package scrollbg

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Layer is an offscreen pixmap that content is drawn into before being
// composited onto its parent in one step. The widget keeps one layer and
// reuses its storage across frames.
type Layer struct {
	pixmap  *Pixmap
	opacity float64
}

// NewLayer creates a transparent layer. Opacity is clamped to [0, 1].
func NewLayer(width, height int, opacity float64) *Layer {
	return &Layer{
		pixmap:  NewPixmap(width, height),
		opacity: clampUnit(opacity),
	}
}

// Pixmap returns the layer's drawing target.
func (l *Layer) Pixmap() *Pixmap {
	return l.pixmap
}

// Begin prepares the layer for a new frame of the given size: the buffer is
// reallocated only when the size changed, then cleared to transparent.
func (l *Layer) Begin(width, height int) *Pixmap {
	l.pixmap.Resize(width, height)
	l.pixmap.Clear(color.Transparent)
	return l.pixmap
}

// CompositeOnto draws the layer onto parent with source-over at the layer's
// opacity.
func (l *Layer) CompositeOnto(parent *Pixmap) {
	r := l.pixmap.Bounds().Intersect(parent.Bounds())
	if r.Empty() || l.opacity == 0 {
		return
	}
	if l.opacity >= 1 {
		xdraw.Draw(parent.Image(), r, l.pixmap.Image(), r.Min, xdraw.Over)
		return
	}
	// #nosec G115 -- opacity is clamped to [0, 1]
	a := uint8(l.opacity*255 + 0.5)
	xdraw.DrawMask(parent.Image(), r, l.pixmap.Image(), r.Min,
		image.NewUniform(color.Alpha{A: a}), image.Point{}, xdraw.Over)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
