package scrollbg

import (
	"fmt"
	"image"
	"strings"
	"time"
)

// Axis is the direction tiles repeat along.
type Axis uint8

const (
	// Horizontal scrolls content towards the left edge.
	Horizontal Axis = iota
	// Vertical scrolls content towards the top edge.
	Vertical
)

// String returns the lower-case axis name.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
}

// Toggle returns the other axis.
func (a Axis) Toggle() Axis {
	if a == Vertical {
		return Horizontal
	}
	return Vertical
}

// ParseAxis parses "horizontal" or "vertical" (case-insensitive, "h"/"v" accepted).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h", "":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("%w: unknown axis %q", ErrInvalidInput, s)
}

// Corner identifies one corner of the clip rectangle.
type Corner uint8

const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
)

// String returns the corner name.
func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomRight:
		return "bottom-right"
	case BottomLeft:
		return "bottom-left"
	default:
		return fmt.Sprintf("Corner(%d)", uint8(c))
	}
}

// Radius is an elliptical corner radius.
type Radius struct {
	X, Y float64
}

// Uniform returns a circular radius r.
func Uniform(r float64) Radius {
	return Radius{X: r, Y: r}
}

func (r Radius) clamped() Radius {
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	return r
}

// CornerRadii holds one radius per corner, indexed by Corner.
type CornerRadii [4]Radius

// Insets is padding on each side of a viewport, in pixels.
type Insets struct {
	Left, Top, Right, Bottom int
}

// UniformInsets returns equal padding on every side.
func UniformInsets(p int) Insets {
	return Insets{Left: p, Top: p, Right: p, Bottom: p}
}

// Viewport is the pixel size of the widget plus its padding.
type Viewport struct {
	Width, Height int
	Padding       Insets
}

// Empty reports whether the viewport has no area.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Bounds returns the full viewport rectangle.
func (v Viewport) Bounds() image.Rectangle {
	return image.Rect(0, 0, v.Width, v.Height)
}

// extent returns the viewport size along axis a and across it.
func (v Viewport) extent(a Axis) (along, cross int) {
	if a == Vertical {
		return v.Height, v.Width
	}
	return v.Width, v.Height
}

// DefaultSpeed is the per-frame step in pixels when none is configured.
const DefaultSpeed = 5

// Config is the construction-time configuration of a ScrollImage.
type Config struct {
	// Speed is the per-frame step in pixels. Zero means DefaultSpeed.
	Speed int

	Axis Axis

	// AutoStart starts scrolling as soon as the widget has something to draw.
	AutoStart bool

	// Source is the image tiled across the viewport.
	Source image.Image

	// Mask is drawn once per frame at the origin, on top of the tiles.
	Mask image.Image

	// ScrollDuration, when positive, is the time one full tile takes to
	// scroll past. It overrides Speed and switches the redraw loop to a fixed
	// 16ms cadence.
	ScrollDuration time.Duration

	// CornerRadius is applied to every corner not listed in Corners.
	CornerRadius int

	// Corners overrides CornerRadius for individual corners.
	Corners map[Corner]int

	// LegacyWrap restores the reset-then-decrement wrap rule, which lets the
	// offset overshoot -tileSize by up to one step before it snaps back.
	// It applies to positive speeds only; other speeds wrap normally.
	LegacyWrap bool
}

// DefaultConfig returns the configuration the widget uses when nothing is set:
// horizontal scrolling at DefaultSpeed, started automatically, square corners.
func DefaultConfig() Config {
	return Config{
		Speed:     DefaultSpeed,
		Axis:      Horizontal,
		AutoStart: true,
	}
}

// radii resolves the uniform radius and per-corner overrides.
func (c Config) radii() CornerRadii {
	var out CornerRadii
	for i := range out {
		r := c.CornerRadius
		if v, ok := c.Corners[Corner(i)]; ok {
			r = v
		}
		out[i] = Uniform(float64(r)).clamped()
	}
	return out
}

func (c Config) speed() float64 {
	if c.Speed == 0 {
		return DefaultSpeed
	}
	return float64(c.Speed)
}
