package scrollbg

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// kappa is the control point distance for a quarter ellipse drawn with one
// cubic Bezier: 4/3 * (sqrt(2) - 1).
const kappa = 0.5522847498307936

// Point is a 2D point.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Rect is an axis-aligned rectangle with float64 coordinates.
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// PathElement is a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a subpath.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is a vector outline.
type Path struct {
	elements []PathElement
	start    Point
	current  Point
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Clear removes all elements.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.start = Point{}
	p.current = Point{}
}

// RoundedRectangle adds a clockwise rectangle whose corners are quarter
// ellipses with the given radii. When two radii on one side add up to more
// than that side, every radius is scaled down by the same factor.
func (p *Path) RoundedRectangle(r Rect, radii CornerRadii) {
	if r.IsEmpty() {
		return
	}
	radii = fitRadii(r, radii)
	tl, tr, br, bl := radii[TopLeft], radii[TopRight], radii[BottomRight], radii[BottomLeft]
	x0, y0, x1, y1 := r.X, r.Y, r.Right(), r.Bottom()

	p.MoveTo(x0+tl.X, y0)
	p.LineTo(x1-tr.X, y0)
	if tr.X > 0 && tr.Y > 0 {
		p.CubicTo(x1-tr.X+tr.X*kappa, y0, x1, y0+tr.Y-tr.Y*kappa, x1, y0+tr.Y)
	} else {
		p.LineTo(x1, y0)
	}
	p.LineTo(x1, y1-br.Y)
	if br.X > 0 && br.Y > 0 {
		p.CubicTo(x1, y1-br.Y+br.Y*kappa, x1-br.X+br.X*kappa, y1, x1-br.X, y1)
	} else {
		p.LineTo(x1, y1)
	}
	p.LineTo(x0+bl.X, y1)
	if bl.X > 0 && bl.Y > 0 {
		p.CubicTo(x0+bl.X-bl.X*kappa, y1, x0, y1-bl.Y+bl.Y*kappa, x0, y1-bl.Y)
	} else {
		p.LineTo(x0, y1)
	}
	p.LineTo(x0, y0+tl.Y)
	if tl.X > 0 && tl.Y > 0 {
		p.CubicTo(x0, y0+tl.Y-tl.Y*kappa, x0+tl.X-tl.X*kappa, y0, x0+tl.X, y0)
	} else {
		p.LineTo(x0, y0)
	}
	p.Close()
}

// fitRadii clamps negative radii, squares off corners with a zero component
// and scales all radii so adjacent ones never overlap.
func fitRadii(r Rect, radii CornerRadii) CornerRadii {
	for i := range radii {
		radii[i] = radii[i].clamped()
		if radii[i].X == 0 || radii[i].Y == 0 {
			radii[i] = Radius{}
		}
	}

	scale := 1.0
	shrink := func(side, a, b float64) {
		if sum := a + b; sum > side && sum > 0 {
			scale = math.Min(scale, side/sum)
		}
	}
	shrink(r.W, radii[TopLeft].X, radii[TopRight].X)
	shrink(r.H, radii[TopRight].Y, radii[BottomRight].Y)
	shrink(r.W, radii[BottomRight].X, radii[BottomLeft].X)
	shrink(r.H, radii[BottomLeft].Y, radii[TopLeft].Y)

	if scale < 1 {
		for i := range radii {
			radii[i].X *= scale
			radii[i].Y *= scale
		}
	}
	return radii
}

// Bounds returns the bounding box of every point and control point.
func (p *Path) Bounds() Rect {
	if len(p.elements) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	add := func(pt Point) {
		minX, minY = math.Min(minX, pt.X), math.Min(minY, pt.Y)
		maxX, maxY = math.Max(maxX, pt.X), math.Max(maxY, pt.Y)
	}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			add(e.Point)
		case LineTo:
			add(e.Point)
		case CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	if math.IsInf(minX, 0) {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Rasterize fills the path into a width×height coverage mask with
// anti-aliasing. Parts of the path outside the mask are dropped.
func (p *Path) Rasterize(width, height int) *Mask {
	mask := NewMask(width, height)
	if width <= 0 || height <= 0 || len(p.elements) == 0 {
		return mask
	}

	z := vector.NewRasterizer(width, height)
	z.DrawOp = xdraw.Src
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			z.MoveTo(float32(e.Point.X), float32(e.Point.Y))
		case LineTo:
			z.LineTo(float32(e.Point.X), float32(e.Point.Y))
		case CubicTo:
			z.CubeTo(float32(e.Control1.X), float32(e.Control1.Y),
				float32(e.Control2.X), float32(e.Control2.Y),
				float32(e.Point.X), float32(e.Point.Y))
		case Close:
			z.ClosePath()
		}
	}

	dst := &image.Alpha{
		Pix:    mask.data,
		Stride: width,
		Rect:   image.Rect(0, 0, width, height),
	}
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return mask
}
