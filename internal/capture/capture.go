// Package capture records composed frames to a compact stream and reads
// them back.
//
// A stream starts with a header (magic "SBGC", version, width, height) and
// holds one record per frame: a kind byte, the payload length and the payload.
// Payloads are premultiplied RGBA rows compressed as LZ4 blocks; frames LZ4
// cannot shrink are stored raw.
package capture

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/pierrec/lz4/v4"
)

const version = 1

var magic = [4]byte{'S', 'B', 'G', 'C'}

const (
	kindRaw byte = iota
	kindLZ4
)

var (
	// ErrFormat is returned for streams that are not frame captures.
	ErrFormat = errors.New("capture: invalid stream")

	// ErrFrameSize is returned when a frame does not match the stream size.
	ErrFrameSize = errors.New("capture: frame size mismatch")
)

// Writer appends frames to a capture stream.
type Writer struct {
	w      *bufio.Writer
	width  int
	height int
	buf    []byte
	frames int
}

// NewWriter writes the stream header for width×height frames to w.
func NewWriter(w io.Writer, width, height int) (*Writer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrFrameSize, width, height)
	}
	bw := bufio.NewWriter(w)
	var hdr [13]byte
	copy(hdr[:4], magic[:])
	hdr[4] = version
	binary.LittleEndian.PutUint32(hdr[5:], uint32(width))  // #nosec G115 -- checked positive
	binary.LittleEndian.PutUint32(hdr[9:], uint32(height)) // #nosec G115 -- checked positive
	if _, err := bw.Write(hdr[:]); err != nil {
		return nil, err
	}
	return &Writer{
		w:      bw,
		width:  width,
		height: height,
		buf:    make([]byte, lz4.CompressBlockBound(width*height*4)),
	}, nil
}

// WriteFrame appends img. Its bounds must match the stream size.
func (cw *Writer) WriteFrame(img *image.RGBA) error {
	b := img.Bounds()
	if b.Dx() != cw.width || b.Dy() != cw.height {
		return fmt.Errorf("%w: got %dx%d, want %dx%d", ErrFrameSize, b.Dx(), b.Dy(), cw.width, cw.height)
	}

	raw := packRows(img)
	n, err := lz4.CompressBlock(raw, cw.buf, nil)
	if err != nil {
		return fmt.Errorf("capture: compress frame %d: %w", cw.frames, err)
	}

	kind, payload := kindLZ4, cw.buf[:n]
	if n == 0 || n >= len(raw) {
		kind, payload = kindRaw, raw
	}

	var rec [5]byte
	rec[0] = kind
	binary.LittleEndian.PutUint32(rec[1:], uint32(len(payload))) // #nosec G115 -- bounded by frame size
	if _, err := cw.w.Write(rec[:]); err != nil {
		return err
	}
	if _, err := cw.w.Write(payload); err != nil {
		return err
	}
	cw.frames++
	return nil
}

// Frames returns the number of frames written.
func (cw *Writer) Frames() int {
	return cw.frames
}

// Flush writes buffered data to the underlying writer.
func (cw *Writer) Flush() error {
	return cw.w.Flush()
}

// packRows returns the pixel rows of img without stride padding.
func packRows(img *image.RGBA) []byte {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	if img.Stride == rowLen && b.Min == (image.Point{}) {
		return img.Pix[:rowLen*b.Dy()]
	}
	out := make([]byte, 0, rowLen*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		out = append(out, img.Pix[i:i+rowLen]...)
	}
	return out
}

// Reader reads frames from a capture stream.
type Reader struct {
	r      *bufio.Reader
	width  int
	height int
	buf    []byte
}

// NewReader reads the stream header from r.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	var hdr [13]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrFormat, err)
	}
	if [4]byte(hdr[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrFormat, hdr[:4])
	}
	if hdr[4] != version {
		return nil, fmt.Errorf("%w: version %d", ErrFormat, hdr[4])
	}
	w := int(binary.LittleEndian.Uint32(hdr[5:]))
	h := int(binary.LittleEndian.Uint32(hdr[9:]))
	if w <= 0 || h <= 0 || w > 1<<15 || h > 1<<15 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrFormat, w, h)
	}
	return &Reader{r: br, width: w, height: h}, nil
}

// Size returns the frame dimensions.
func (cr *Reader) Size() (width, height int) {
	return cr.width, cr.height
}

// Next decodes the next frame. It returns io.EOF after the last one.
func (cr *Reader) Next() (*image.RGBA, error) {
	var rec [5]byte
	if _, err := io.ReadFull(cr.r, rec[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: record: %v", ErrFormat, err)
	}
	size := cr.width * cr.height * 4
	n := int(binary.LittleEndian.Uint32(rec[1:]))
	if n > lz4.CompressBlockBound(size) {
		return nil, fmt.Errorf("%w: record length %d", ErrFormat, n)
	}
	if cap(cr.buf) < n {
		cr.buf = make([]byte, n)
	}
	payload := cr.buf[:n]
	if _, err := io.ReadFull(cr.r, payload); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrFormat, err)
	}

	img := image.NewRGBA(image.Rect(0, 0, cr.width, cr.height))
	switch rec[0] {
	case kindRaw:
		if n != size {
			return nil, fmt.Errorf("%w: raw frame of %d bytes", ErrFrameSize, n)
		}
		copy(img.Pix, payload)
	case kindLZ4:
		got, err := lz4.UncompressBlock(payload, img.Pix)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		if got != size {
			return nil, fmt.Errorf("%w: decompressed %d bytes, want %d", ErrFrameSize, got, size)
		}
	default:
		return nil, fmt.Errorf("%w: record kind %d", ErrFormat, rec[0])
	}
	return img, nil
}
