package scrollbg

import "time"

// Invalidator is implemented by the host to schedule redraws. Requests made
// before the next frame is drawn must coalesce into a single frame.
type Invalidator interface {
	// Invalidate requests a frame as soon as the host can draw one.
	Invalidate()
	// InvalidateAfter requests a frame after d. A new call replaces any
	// delayed request still pending.
	InvalidateAfter(d time.Duration)
}

type nopInvalidator struct{}

func (nopInvalidator) Invalidate()                   {}
func (nopInvalidator) InvalidateAfter(time.Duration) {}

// Drawer draws content into the widget's layer after the background and
// mask. Everything it draws is clipped to the rounded rectangle.
type Drawer interface {
	Draw(dst *Pixmap)
}

// DrawerFunc adapts a function to Drawer.
type DrawerFunc func(dst *Pixmap)

// Draw calls f(dst).
func (f DrawerFunc) Draw(dst *Pixmap) { f(dst) }

// Option configures a ScrollImage during creation.
//
// Example:
//
//	w := scrollbg.New(scrollbg.DefaultConfig(),
//	    scrollbg.WithCompositeStrategy(scrollbg.CutOut),
//	    scrollbg.WithInvalidator(host))
type Option func(*options)

type options struct {
	strategy    CompositeStrategy
	invalidator Invalidator
	children    []Drawer
}

func defaultOptions() options {
	return options{
		strategy:    ClipIn,
		invalidator: nopInvalidator{},
	}
}

// WithCompositeStrategy selects how corners are cut from the composed frame.
// The choice is a backend capability; output is the same either way.
func WithCompositeStrategy(s CompositeStrategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithInvalidator connects the widget's redraw loop to the host.
// A nil invalidator leaves the default, which drops every request.
func WithInvalidator(inv Invalidator) Option {
	return func(o *options) {
		if inv != nil {
			o.invalidator = inv
		}
	}
}

// WithChild adds content drawn above the background.
func WithChild(d Drawer) Option {
	return func(o *options) {
		if d != nil {
			o.children = append(o.children, d)
		}
	}
}
