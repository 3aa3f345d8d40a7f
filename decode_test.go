package scrollbg

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(8, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255})); err != nil {
		t.Fatal(err)
	}

	img, err := LoadImage(&buf)
	if err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 8, 4) {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestLoadImageUnsupported(t *testing.T) {
	img, err := LoadImage(bytes.NewReader([]byte{1, 2, 3, 4, 5}))
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("LoadImage(garbage) error = %v, want ErrUnsupportedImage", err)
	}
	if img != nil {
		t.Error("LoadImage(garbage) returned an image")
	}
}

func TestLoadImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mask.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, solidImage(3, 3, color.RGBA{A: 255})); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadImageFile(path); err != nil {
		t.Errorf("LoadImageFile() error = %v", err)
	}
	if _, err := LoadImageFile(path + ".missing"); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("missing file error = %v, want ErrUnsupportedImage", err)
	}
}

func TestUsable(t *testing.T) {
	if usable(nil) != nil {
		t.Error("usable(nil) != nil")
	}
	if usable(image.NewRGBA(image.Rect(0, 0, 0, 5))) != nil {
		t.Error("empty image reported usable")
	}
	if usable(solidImage(1, 1, color.RGBA{})) == nil {
		t.Error("1x1 image reported unusable")
	}
}
