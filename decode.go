package scrollbg

import (
	"fmt"
	"image"
	"io"

	"github.com/gogpu/scrollbg/internal/imageio"
)

// LoadImage decodes a source or mask resource. Data no decoder accepts
// yields an error wrapping ErrUnsupportedImage.
func LoadImage(r io.Reader) (image.Image, error) {
	img, _, err := imageio.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	return img, nil
}

// LoadImageFile decodes the image file at path.
func LoadImageFile(path string) (image.Image, error) {
	img, err := imageio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	return img, nil
}

// usable returns img, or nil when it has nothing to draw.
func usable(img image.Image) image.Image {
	if img == nil || img.Bounds().Empty() {
		return nil
	}
	return img
}
