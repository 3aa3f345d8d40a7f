package imageio

import (
	"encoding/binary"
	"fmt"
	"image"

	"github.com/mauserzjeh/dxt"
)

var ddsMagic = []byte("DDS ")

const (
	ddsHeaderSize = 128

	// offsets into the file, magic included
	ddsOffHeight = 12
	ddsOffWidth  = 16
	ddsOffFourCC = 84
)

// decodeDDS decodes the top mip level of a DXT1 or DXT5 DDS texture.
func decodeDDS(data []byte) (image.Image, error) {
	if len(data) < ddsHeaderSize {
		return nil, fmt.Errorf("%w: dds header truncated (%d bytes)", ErrUnsupported, len(data))
	}
	height := binary.LittleEndian.Uint32(data[ddsOffHeight:])
	width := binary.LittleEndian.Uint32(data[ddsOffWidth:])
	fourCC := string(data[ddsOffFourCC : ddsOffFourCC+4])
	if width == 0 || height == 0 || width > 1<<14 || height > 1<<14 {
		return nil, fmt.Errorf("%w: dds size %dx%d", ErrUnsupported, width, height)
	}

	blocks := int((width+3)/4) * int((height+3)/4)
	payload := data[ddsHeaderSize:]

	var (
		pix []byte
		err error
	)
	switch fourCC {
	case "DXT1":
		if len(payload) < blocks*8 {
			return nil, fmt.Errorf("%w: dxt1 payload truncated", ErrUnsupported)
		}
		pix, err = dxt.DecodeDXT1(payload[:blocks*8], uint(width), uint(height))
	case "DXT5":
		if len(payload) < blocks*16 {
			return nil, fmt.Errorf("%w: dxt5 payload truncated", ErrUnsupported)
		}
		pix, err = dxt.DecodeDXT5(payload[:blocks*16], uint(width), uint(height))
	default:
		return nil, fmt.Errorf("%w: dds format %q", ErrUnsupported, fourCC)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	w, h := int(width), int(height)
	if len(pix) < w*h*4 {
		return nil, fmt.Errorf("%w: dxt decoder returned %d bytes for %dx%d", ErrUnsupported, len(pix), w, h)
	}
	// DXT colors are straight alpha.
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, pix[:w*h*4])
	return img, nil
}
