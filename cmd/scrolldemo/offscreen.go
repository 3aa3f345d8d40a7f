package main

import (
	"errors"
	"image"
	"os"

	"github.com/gogpu/scrollbg"
	"github.com/gogpu/scrollbg/internal/capture"
)

// renderOffscreen draws s.frames frames of a width×height widget without a
// terminal, optionally recording them, and saves the last frame as PNG.
func renderOffscreen(s settings) (err error) {
	cfg, opts, err := s.config()
	if err != nil {
		return err
	}
	w := scrollbg.New(cfg, opts...)
	w.AddChild(statusLabel(w))
	w.Resize(scrollbg.Viewport{
		Width:   s.width,
		Height:  s.height,
		Padding: scrollbg.UniformInsets(s.padding),
	})

	var rec *capture.Writer
	if s.record != "" {
		f, createErr := os.Create(s.record) //nolint:gosec // user-provided output path
		if createErr != nil {
			return createErr
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		if rec, err = capture.NewWriter(f, s.width, s.height); err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, rec.Flush())
		}()
	}

	frames := s.frames
	if frames <= 0 {
		frames = 1
	}
	frame := scrollbg.NewPixmap(s.width, s.height)
	for range frames {
		frame.Clear(image.Transparent)
		w.Draw(frame)
		if rec != nil {
			if err := rec.WriteFrame(frame.Image()); err != nil {
				return err
			}
		}
	}

	scrollbg.Logger().Info("scrolldemo: frames rendered", "frames", frames, "state", w.State())
	return frame.SavePNG(s.png)
}
