package scrollbg

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Pixmap is a premultiplied RGBA pixel buffer. It implements draw.Image.
type Pixmap struct {
	img *image.RGBA
}

// NewPixmap creates a transparent pixmap.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.img.Rect.Dx()
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.img.Rect.Dy()
}

// Data returns the raw premultiplied RGBA bytes, 4 per pixel.
func (p *Pixmap) Data() []uint8 {
	return p.img.Pix
}

// Image returns the backing image. Writes to it are visible in the pixmap.
func (p *Pixmap) Image() *image.RGBA {
	return p.img
}

// Clear fills the entire pixmap with c.
func (p *Pixmap) Clear(c color.Color) {
	r, g, b, a := c.RGBA()
	px := [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
	for i := 0; i < len(p.img.Pix); i += 4 {
		copy(p.img.Pix[i:i+4], px[:])
	}
}

// Resize reallocates the pixmap when its size differs. Contents are lost.
func (p *Pixmap) Resize(width, height int) {
	if p.Width() == width && p.Height() == height {
		return
	}
	*p = *NewPixmap(width, height)
}

// RGBAAt returns the premultiplied color at (x, y).
func (p *Pixmap) RGBAAt(x, y int) color.RGBA {
	return p.img.RGBAAt(x, y)
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, p.img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.img.At(x, y)
}

// Set implements the draw.Image interface.
func (p *Pixmap) Set(x, y int, c color.Color) {
	p.img.Set(x, y, c)
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return p.img.Rect
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}
