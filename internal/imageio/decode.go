// Package imageio decodes source and mask resources.
//
// Besides the formats registered with the standard image package (PNG,
// JPEG, GIF) it accepts BMP, TIFF and WebP through golang.org/x/image, and
// uncompressed DDS textures with DXT1 or DXT5 block compression.
package imageio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrUnsupported is returned for data no decoder recognises or that a
// decoder rejects.
var ErrUnsupported = errors.New("imageio: unsupported image")

// Decode reads one image from r. The format is detected from the data.
func Decode(r io.Reader) (image.Image, string, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(ddsMagic)); err == nil && bytes.Equal(head, ddsMagic) {
		data, err := io.ReadAll(br)
		if err != nil {
			return nil, "", err
		}
		img, err := decodeDDS(data)
		if err != nil {
			return nil, "dds", err
		}
		return img, "dds", nil
	}

	img, format, err := image.Decode(br)
	if err != nil {
		return nil, format, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if img.Bounds().Empty() {
		return nil, format, fmt.Errorf("%w: %s image has no pixels", ErrUnsupported, format)
	}
	return img, format, nil
}

// Open decodes the image file at path.
func Open(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	img, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}
