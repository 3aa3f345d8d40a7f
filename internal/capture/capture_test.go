package capture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"math/rand/v2"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func noise(w, h int) *image.RGBA {
	rng := rand.New(rand.NewPCG(1, 2))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.UintN(256))
	}
	return img
}

func TestRoundTrip(t *testing.T) {
	frames := []*image.RGBA{
		solid(32, 16, color.RGBA{R: 255, A: 255}),
		noise(32, 16),
		solid(32, 16, color.RGBA{}),
	}

	var buf bytes.Buffer
	w, err := NewWriter(&buf, 32, 16)
	if err != nil {
		t.Fatalf("NewWriter() error = %v", err)
	}
	for i, f := range frames {
		if err := w.WriteFrame(f); err != nil {
			t.Fatalf("WriteFrame(%d) error = %v", i, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if w.Frames() != len(frames) {
		t.Errorf("Frames() = %d, want %d", w.Frames(), len(frames))
	}

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	if w, h := r.Size(); w != 32 || h != 16 {
		t.Errorf("Size() = %dx%d", w, h)
	}
	for i, want := range frames {
		got, err := r.Next()
		if err != nil {
			t.Fatalf("Next() frame %d error = %v", i, err)
		}
		if !bytes.Equal(got.Pix, want.Pix) {
			t.Errorf("frame %d differs after round trip", i)
		}
	}
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next() after last frame = %v, want io.EOF", err)
	}
}

func TestSolidFrameCompresses(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFrame(solid(64, 64, color.RGBA{G: 200, A: 255})); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.Bytes()[13] != kindLZ4 {
		t.Errorf("record kind = %d, want lz4", buf.Bytes()[13])
	}
	if buf.Len() >= 64*64*4 {
		t.Errorf("solid frame took %d bytes", buf.Len())
	}
}

func TestSubImageFrame(t *testing.T) {
	big := noise(20, 20)
	sub := big.SubImage(image.Rect(5, 5, 15, 13)).(*image.RGBA)

	var buf bytes.Buffer
	w, _ := NewWriter(&buf, 10, 8)
	if err := w.WriteFrame(sub); err != nil {
		t.Fatal(err)
	}
	_ = w.Flush()

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.Next()
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 10; x++ {
			if got.RGBAAt(x, y) != big.RGBAAt(x+5, y+5) {
				t.Fatalf("pixel (%d,%d) differs", x, y)
			}
		}
	}
}

func TestWriterSizeMismatch(t *testing.T) {
	if _, err := NewWriter(io.Discard, 0, 5); !errors.Is(err, ErrFrameSize) {
		t.Errorf("NewWriter(0x5) error = %v, want ErrFrameSize", err)
	}

	w, err := NewWriter(io.Discard, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFrame(solid(5, 4, color.RGBA{})); !errors.Is(err, ErrFrameSize) {
		t.Errorf("WriteFrame(5x4) error = %v, want ErrFrameSize", err)
	}
}

func TestReaderBadStreams(t *testing.T) {
	var good bytes.Buffer
	w, _ := NewWriter(&good, 4, 4)
	_ = w.WriteFrame(solid(4, 4, color.RGBA{B: 9, A: 255}))
	_ = w.Flush()
	valid := good.Bytes()

	badMagic := bytes.Clone(valid)
	copy(badMagic, "NOPE")
	badVersion := bytes.Clone(valid)
	badVersion[4] = 9

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", badMagic},
		{"bad version", badVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewReader(bytes.NewReader(tt.data)); !errors.Is(err, ErrFormat) {
				t.Errorf("NewReader() error = %v, want ErrFormat", err)
			}
		})
	}

	truncated := valid[:len(valid)-3]
	r, err := NewReader(bytes.NewReader(truncated))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Next(); !errors.Is(err, ErrFormat) {
		t.Errorf("Next() on truncated payload = %v, want ErrFormat", err)
	}

	badKind := bytes.Clone(valid)
	badKind[13] = 7
	r, _ = NewReader(bytes.NewReader(badKind))
	if _, err := r.Next(); !errors.Is(err, ErrFormat) {
		t.Errorf("Next() on unknown record kind = %v, want ErrFormat", err)
	}
}
