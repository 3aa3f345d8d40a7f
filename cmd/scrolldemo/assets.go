package main

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/scrollbg"
)

// defaultSource is a 96x48 pattern of diagonal stripes over a vertical
// gradient, so motion is visible along either axis.
func defaultSource() image.Image {
	const w, h = 96, 48
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		t := float64(y) / (h - 1)
		for x := 0; x < w; x++ {
			c := color.NRGBA{
				R: uint8(30 + 60*t),
				G: uint8(60 + 90*t),
				B: uint8(140 + 100*t),
				A: 255,
			}
			if (x+y)%24 < 6 {
				c.R, c.G = 240, 180
			}
			if x == 0 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// defaultMask is a translucent panel behind the status label.
func defaultMask() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 140, 16))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 150
	}
	return img
}

// statusLabel draws the axis and running state near the top-left corner.
func statusLabel(w *scrollbg.ScrollImage) scrollbg.Drawer {
	return scrollbg.DrawerFunc(func(dst *scrollbg.Pixmap) {
		s := w.State()
		state := "stopped"
		if s.Running {
			state = "running"
		}
		pad := w.Viewport().Padding
		d := font.Drawer{
			Dst:  dst.Image(),
			Src:  image.White,
			Face: basicfont.Face7x13,
			Dot:  fixed.P(pad.Left+4, pad.Top+basicfont.Face7x13.Ascent+1),
		}
		d.DrawString(s.Axis.String() + " " + state)
	})
}
