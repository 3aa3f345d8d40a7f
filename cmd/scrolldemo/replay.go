package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/scrollbg"
	"github.com/gogpu/scrollbg/internal/capture"
)

const replayHelp = "replay  q quit"

// replay shows the frames of a capture stream at the widget's frame rate. It
// returns after the last frame, on a quit key or when ctx is done.
func replay(ctx context.Context, screen tcell.Screen, r io.Reader, delay time.Duration) error {
	cr, err := capture.NewReader(r)
	if err != nil {
		return err
	}
	w, h := cr.Size()
	cols, rows := screen.Size()
	if w > cols || h/2 > rows-1 {
		scrollbg.Logger().Warn("scrolldemo: capture larger than the terminal",
			"capture", fmt.Sprintf("%dx%d", w, h),
			"terminal", fmt.Sprintf("%dx%d", cols, rows))
	}

	done := make(chan struct{})
	defer close(done)
	events := pollEvents(screen, done)

	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	for frames := 0; ; frames++ {
		img, err := cr.Next()
		if errors.Is(err, io.EOF) {
			scrollbg.Logger().Debug("scrolldemo: replay finished", "frames", frames)
			return nil
		}
		if err != nil {
			return fmt.Errorf("frame %d: %w", frames, err)
		}
		drawHelp(screen, blit(screen, img), replayHelp)
		screen.Show()

		if quit := waitTick(ctx, screen, events, ticker.C); quit {
			return nil
		}
	}
}

// waitTick handles events until the next tick. It reports whether to stop.
func waitTick(ctx context.Context, screen tcell.Screen, events <-chan tcell.Event, tick <-chan time.Time) bool {
	for {
		select {
		case <-ctx.Done():
			return true
		case <-tick:
			return false
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if quitKey(ev) {
					return true
				}
			}
		}
	}
}

func runReplay(ctx context.Context, path string) error {
	f, err := os.Open(path) //nolint:gosec // user-provided capture path
	if err != nil {
		return err
	}
	defer f.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	return replay(ctx, screen, f, scrollbg.FrameDelay)
}
