package scrollbg

import (
	"image/color"
	"testing"
)

func TestLayerBeginReusesStorage(t *testing.T) {
	l := NewLayer(0, 0, 1)
	pm := l.Begin(10, 10)
	pm.Clear(color.RGBA{R: 255, A: 255})
	first := &pm.Data()[0]

	pm = l.Begin(10, 10)
	if &pm.Data()[0] != first {
		t.Error("Begin with an unchanged size reallocated the layer")
	}
	if c := pm.RGBAAt(5, 5); c != (color.RGBA{}) {
		t.Errorf("Begin did not clear the layer: %v", c)
	}

	pm = l.Begin(20, 5)
	if pm.Width() != 20 || pm.Height() != 5 {
		t.Errorf("layer size = %dx%d, want 20x5", pm.Width(), pm.Height())
	}
	if l.Pixmap() != pm {
		t.Error("Pixmap() should return the frame target")
	}
}

func TestLayerCompositeOnto(t *testing.T) {
	parent := NewPixmap(4, 4)
	parent.Clear(color.RGBA{B: 255, A: 255})

	l := NewLayer(4, 4, 1)
	l.Pixmap().Set(1, 1, color.RGBA{R: 255, A: 255})
	l.CompositeOnto(parent)

	if c := parent.RGBAAt(1, 1); c != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("covered pixel = %v, want red", c)
	}
	if c := parent.RGBAAt(2, 2); c != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("transparent layer pixel changed parent: %v", c)
	}
}

func TestLayerOpacity(t *testing.T) {
	tests := []struct {
		name    string
		opacity float64
		wantR   uint8
		exact   bool
	}{
		{"zero", 0, 0, true},
		{"clamped below", -1, 0, true},
		{"full", 1, 255, true},
		{"clamped above", 3, 255, true},
		{"half", 0.5, 128, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := NewPixmap(1, 1)
			l := NewLayer(1, 1, tt.opacity)
			l.Pixmap().Clear(color.RGBA{R: 255, A: 255})
			l.CompositeOnto(parent)

			got := parent.RGBAAt(0, 0).R
			if tt.exact && got != tt.wantR {
				t.Errorf("R = %d, want %d", got, tt.wantR)
			}
			if !tt.exact && (got < tt.wantR-2 || got > tt.wantR+2) {
				t.Errorf("R = %d, want about %d", got, tt.wantR)
			}
		})
	}
}
