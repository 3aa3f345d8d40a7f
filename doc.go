// Package scrollbg renders an infinitely scrolling background image.
//
// # Overview
//
// A ScrollImage tiles one image along a horizontal or vertical axis inside a
// viewport and moves the tiling a step every frame. The composed frame is
// clipped to a rounded rectangle inset by the viewport padding, and an
// optional mask image is drawn over the tiles at the origin.
//
// # Quick Start
//
//	import "github.com/gogpu/scrollbg"
//
//	cfg := scrollbg.DefaultConfig()
//	cfg.Source = img
//	cfg.CornerRadius = 12
//
//	w := scrollbg.New(cfg, scrollbg.WithInvalidator(host))
//	w.Resize(scrollbg.Viewport{Width: 300, Height: 100})
//
//	frame := scrollbg.NewPixmap(300, 100)
//	w.Draw(frame) // call again whenever host gets an invalidate request
//
// # Architecture
//
// The package is organized into:
//   - ScrollEngine: offset, tile geometry and the per-frame wrap
//   - RoundedClipCompositor: rounded clip path, coverage region, corner cut
//   - Drawing core: Path, Mask, Pixmap, Layer, Porter-Duff destination-in/out
//   - ScrollImage: the host-facing widget and its self-scheduling redraw loop
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down. Offsets
// are negative: content moves towards the origin.
//
// # Concurrency
//
// Drawing is single-threaded and driven by the host. The scaled tile is
// published atomically, so a renderer on another goroutine may read it while
// the draw goroutine reconfigures.
package scrollbg

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
