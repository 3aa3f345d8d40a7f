package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/scrollbg"
	"github.com/gogpu/scrollbg/internal/capture"
)

const halfBlock = '▀'

const helpText = "s start  t stop  o orientation  m mask  q quit"

// host drives a ScrollImage from a tcell screen. It implements
// scrollbg.Invalidator: pending redraws collapse into one buffered signal,
// and at most one delayed request is outstanding. Drawing a frame cancels it.
type host struct {
	screen tcell.Screen
	widget *scrollbg.ScrollImage
	frame  *scrollbg.Pixmap

	padding int
	mask    image.Image

	redraw chan struct{}
	timer  *time.Timer // owned by the run goroutine

	rec       *capture.Writer
	maxFrames int
	frames    int
}

func newHost(screen tcell.Screen, s settings) (*host, error) {
	cfg, opts, err := s.config()
	if err != nil {
		return nil, err
	}
	h := &host{
		screen:    screen,
		frame:     scrollbg.NewPixmap(0, 0),
		padding:   s.padding,
		mask:      cfg.Mask,
		redraw:    make(chan struct{}, 1),
		maxFrames: s.frames,
	}
	opts = append(opts, scrollbg.WithInvalidator(h))
	h.widget = scrollbg.New(cfg, opts...)
	h.widget.AddChild(statusLabel(h.widget))
	return h, nil
}

// Invalidate requests a frame. Requests made while one is pending are dropped.
func (h *host) Invalidate() {
	select {
	case h.redraw <- struct{}{}:
	default:
	}
}

// InvalidateAfter requests a frame after d, replacing any earlier delayed
// request.
func (h *host) InvalidateAfter(d time.Duration) {
	h.stopTimer()
	h.timer = time.AfterFunc(d, h.Invalidate)
}

func (h *host) stopTimer() {
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

// resize matches the viewport to the terminal, leaving the last row for help.
func (h *host) resize() {
	cols, rows := h.screen.Size()
	rows--
	if rows < 0 {
		rows = 0
	}
	h.frame.Resize(cols, rows*2)
	h.widget.Resize(scrollbg.Viewport{
		Width:   cols,
		Height:  rows * 2,
		Padding: scrollbg.UniformInsets(h.padding),
	})
}

// drawFrame renders one widget frame and shows it on the screen.
func (h *host) drawFrame() error {
	// This frame answers any pending delayed request; Draw schedules the next.
	h.stopTimer()
	h.frame.Clear(image.Transparent)
	h.widget.Draw(h.frame)
	h.frames++

	rows := blit(h.screen, h.frame.Image())
	drawHelp(h.screen, rows, helpText)
	h.screen.Show()

	if h.rec != nil && !h.frame.Image().Bounds().Empty() {
		if err := h.rec.WriteFrame(h.frame.Image()); err != nil {
			return err
		}
	}
	return nil
}

// blit shows img with two pixels per cell and returns the number of rows used.
func blit(screen tcell.Screen, img *image.RGBA) int {
	b := img.Bounds()
	cols, rows := b.Dx(), b.Dy()/2
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := img.RGBAAt(b.Min.X+x, b.Min.Y+2*y)
			bottom := img.RGBAAt(b.Min.X+x, b.Min.Y+2*y+1)
			// Premultiplied values are already composited over black.
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	return rows
}

func drawHelp(screen tcell.Screen, row int, text string) {
	cols, _ := screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range text {
		if x >= cols {
			break
		}
		screen.SetContent(x, row, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		screen.SetContent(x, row, ' ', nil, style)
	}
}

// quitKey reports whether ev asks the demo to exit.
func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// handle applies one screen event. It reports whether the demo should quit.
func (h *host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		h.resize()
	case *tcell.EventKey:
		if quitKey(ev) {
			return true
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 's', 'S':
				h.widget.Start()
			case 't', 'T':
				h.widget.Stop()
			case 'o', 'O':
				h.widget.SetAxis(h.widget.Axis().Toggle())
			case 'm', 'M':
				if h.widget.MaskImage() != nil {
					h.widget.SetMaskImage(nil)
				} else {
					h.widget.SetMaskImage(h.mask)
				}
			}
		}
	}
	return false
}

// run processes events and redraw requests until quit, ctx is done or the
// frame limit is reached.
func (h *host) run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	defer h.stopTimer()

	events := pollEvents(h.screen, done)

	h.resize()
	h.Invalidate()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if h.handle(ev) {
				return nil
			}
		case <-h.redraw:
			if err := h.drawFrame(); err != nil {
				return err
			}
			if h.maxFrames > 0 && h.frames >= h.maxFrames {
				return nil
			}
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed.
func pollEvents(screen tcell.Screen, done <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

func runTerminal(ctx context.Context, s settings) (err error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	h, err := newHost(screen, s)
	if err != nil {
		return err
	}

	if s.record != "" {
		closeRec, recErr := h.startRecording(s.record)
		if recErr != nil {
			return recErr
		}
		defer func() {
			err = errors.Join(err, closeRec())
		}()
	}
	return h.run(ctx)
}

// startRecording opens a capture for the current terminal size. Frames drawn
// after a resize no longer match and end the recording with an error.
func (h *host) startRecording(path string) (func() error, error) {
	cols, rows := h.screen.Size()
	f, err := os.Create(path) //nolint:gosec // user-provided output path
	if err != nil {
		return nil, err
	}
	rec, err := capture.NewWriter(f, cols, (rows-1)*2)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	h.rec = rec
	return func() error {
		return errors.Join(rec.Flush(), f.Close())
	}, nil
}
