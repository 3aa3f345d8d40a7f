package scrollbg

import "errors"

var (
	// ErrInvalidInput is returned when a scroll configuration is requested for
	// an empty viewport or an empty source image. The engine keeps its previous
	// state and an unconfigured engine draws nothing.
	ErrInvalidInput = errors.New("scrollbg: invalid input")

	// ErrUnsupportedImage is returned when a source or mask resource cannot be
	// decoded. Widgets treat it as "no image".
	ErrUnsupportedImage = errors.New("scrollbg: unsupported image")
)
