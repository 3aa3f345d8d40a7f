// Command scrolldemo shows a scrolling background in the terminal.
//
// Every terminal cell displays two pixels with the upper half block, so an
// 80x24 terminal gives an 80x46 viewport above the status line. Keys:
//
//	s  start scrolling
//	t  stop scrolling
//	o  switch orientation
//	m  toggle the mask
//	q  quit (Esc and Ctrl-C also quit)
//
// With -png the frames are rendered offscreen and the last one is saved
// instead of opening the terminal. -replay plays back a file written by
// -record.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gogpu/scrollbg"
)

// settings holds the parsed command line.
type settings struct {
	image, mask string
	speed       int
	axis        string
	duration    time.Duration
	radius      int
	corners     [4]int
	padding     int
	strategy    string
	noAutostart bool
	legacyWrap  bool

	record  string
	replay  string
	png     string
	frames  int
	width   int
	height  int
	logPath string
}

const unset = -1

func parseFlags(args []string) (settings, error) {
	var s settings
	fs := flag.NewFlagSet("scrolldemo", flag.ContinueOnError)
	fs.StringVar(&s.image, "image", "", "source image (png, jpeg, gif, bmp, tiff, webp, dds); built-in pattern if empty")
	fs.StringVar(&s.mask, "mask", "", "mask image drawn over the background; built-in panel if empty")
	fs.IntVar(&s.speed, "speed", scrollbg.DefaultSpeed, "pixels per frame")
	fs.StringVar(&s.axis, "axis", "horizontal", "scroll axis: horizontal or vertical")
	fs.DurationVar(&s.duration, "duration", 0, "time for one tile to scroll past (overrides -speed)")
	fs.IntVar(&s.radius, "radius", 6, "corner radius in pixels")
	fs.IntVar(&s.corners[scrollbg.TopLeft], "corner-tl", unset, "top-left radius override")
	fs.IntVar(&s.corners[scrollbg.TopRight], "corner-tr", unset, "top-right radius override")
	fs.IntVar(&s.corners[scrollbg.BottomRight], "corner-br", unset, "bottom-right radius override")
	fs.IntVar(&s.corners[scrollbg.BottomLeft], "corner-bl", unset, "bottom-left radius override")
	fs.IntVar(&s.padding, "padding", 0, "padding on every side in pixels")
	fs.StringVar(&s.strategy, "strategy", "clip-in", "corner compositing: clip-in or cut-out")
	fs.BoolVar(&s.noAutostart, "no-autostart", false, "wait for 's' before scrolling")
	fs.BoolVar(&s.legacyWrap, "legacy-wrap", false, "reset the offset before stepping instead of wrapping")
	fs.StringVar(&s.record, "record", "", "append every frame to this capture file")
	fs.StringVar(&s.replay, "replay", "", "play back a capture file written by -record")
	fs.StringVar(&s.png, "png", "", "render offscreen and save the last frame to this PNG")
	fs.IntVar(&s.frames, "frames", 0, "stop after this many frames (0 = run until quit; -png defaults to 1)")
	fs.IntVar(&s.width, "width", 320, "offscreen width for -png")
	fs.IntVar(&s.height, "height", 120, "offscreen height for -png")
	fs.StringVar(&s.logPath, "log", "", "write debug logs to this file")

	if err := fs.Parse(args); err != nil {
		return s, err
	}
	if fs.NArg() > 0 {
		return s, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return s, nil
}

// config builds the widget configuration from the flags and loaded images.
func (s settings) config() (scrollbg.Config, []scrollbg.Option, error) {
	cfg := scrollbg.DefaultConfig()
	cfg.Speed = s.speed
	cfg.AutoStart = !s.noAutostart
	cfg.ScrollDuration = s.duration
	cfg.CornerRadius = s.radius
	cfg.LegacyWrap = s.legacyWrap
	for i, r := range s.corners {
		if r == unset {
			continue
		}
		if cfg.Corners == nil {
			cfg.Corners = make(map[scrollbg.Corner]int)
		}
		cfg.Corners[scrollbg.Corner(i)] = r
	}

	axis, err := scrollbg.ParseAxis(s.axis)
	if err != nil {
		return cfg, nil, err
	}
	cfg.Axis = axis

	strategy, err := scrollbg.ParseCompositeStrategy(s.strategy)
	if err != nil {
		return cfg, nil, err
	}

	cfg.Source = defaultSource()
	if s.image != "" {
		if cfg.Source, err = scrollbg.LoadImageFile(s.image); err != nil {
			return cfg, nil, err
		}
	}
	cfg.Mask = defaultMask()
	if s.mask != "" {
		if cfg.Mask, err = scrollbg.LoadImageFile(s.mask); err != nil {
			return cfg, nil, err
		}
	}

	return cfg, []scrollbg.Option{scrollbg.WithCompositeStrategy(strategy)}, nil
}

func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // user-provided log path
	if err != nil {
		return nil, err
	}
	scrollbg.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	return f, nil
}

func main() {
	s, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("scrolldemo: %v", err)
	}

	logFile, err := setupLogging(s.logPath)
	if err != nil {
		log.Fatalf("scrolldemo: open log: %v", err)
	}
	defer func() {
		_ = logFile.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case s.replay != "":
		err = runReplay(ctx, s.replay)
	case s.png != "":
		err = renderOffscreen(s)
	default:
		err = runTerminal(ctx, s)
	}
	if err != nil {
		log.Fatalf("scrolldemo: %v", err) //nolint:gocritic // exitAfterDefer: log file flush is best effort
	}
}
