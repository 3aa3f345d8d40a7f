package scrollbg

import "testing"

func TestNewMask(t *testing.T) {
	mask := NewMask(100, 100)
	if mask.Width() != 100 || mask.Height() != 100 {
		t.Errorf("expected 100x100, got %dx%d", mask.Width(), mask.Height())
	}
	if mask.At(50, 50) != 0 {
		t.Errorf("expected 0, got %d", mask.At(50, 50))
	}
}

func TestNewMaskNegativeSize(t *testing.T) {
	mask := NewMask(-5, 10)
	if mask.Width() != 0 || !mask.Bounds().Empty() {
		t.Errorf("negative width mask has bounds %v", mask.Bounds())
	}
}

func TestMaskSetInvert(t *testing.T) {
	mask := NewMask(10, 10)
	mask.Set(5, 5, 100)
	mask.Invert()

	if mask.At(5, 5) != 155 {
		t.Errorf("expected 155, got %d", mask.At(5, 5))
	}
	if mask.At(0, 0) != 255 {
		t.Errorf("expected 255, got %d", mask.At(0, 0))
	}
}

func TestMaskClone(t *testing.T) {
	mask := NewMask(10, 10)
	mask.Set(5, 5, 200)

	clone := mask.Clone()
	mask.Set(5, 5, 0)

	if clone.At(5, 5) != 200 {
		t.Errorf("clone should not be affected, expected 200, got %d", clone.At(5, 5))
	}
}

func TestMaskOutOfBounds(t *testing.T) {
	mask := NewMask(10, 10)
	mask.Invert()

	for _, p := range []struct{ x, y int }{{-1, 5}, {10, 5}, {5, -1}, {5, 10}} {
		if mask.At(p.x, p.y) != 0 {
			t.Errorf("At(%d, %d) should be 0 out of bounds", p.x, p.y)
		}
		mask.Set(p.x, p.y, 1) // must not panic
	}
}
