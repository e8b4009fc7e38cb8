// Package platform provides the backends the runtime runs on: a desktop
// backend on ebiten, and a headless one that renders offscreen for tests,
// batch runs and replays.
package platform

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/lumen/internal/application/frame"
	"github.com/younwookim/lumen/internal/domain/errs"
	"github.com/younwookim/lumen/internal/infrastructure/config"
	"github.com/younwookim/lumen/internal/infrastructure/logging"
)

// Option configures a backend.
type Option func(*options)

type options struct {
	logger *slog.Logger
	events frame.EventSource
	frames int64
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithEvents replaces the backend's own input with src, for example a
// replay.Replayer.
func WithEvents(src frame.EventSource) Option {
	return func(o *options) { o.events = src }
}

// WithFrames makes the backend report a window close after n frames.
func WithFrames(n int64) Option {
	return func(o *options) { o.frames = n }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Nop()
	}
	return o
}

// Ebiten is the desktop backend. Ebiten owns the loop: Run hands it a
// frame.Host and ebiten paces updates with TPS and draws with vsync.
type Ebiten struct {
	opts   options
	window config.Window
	opened bool
}

// NewEbiten creates a new ebiten backend
func NewEbiten(opts ...Option) *Ebiten {
	return &Ebiten{opts: buildOptions(opts)}
}

// Open applies w to the ebiten window.
func (b *Ebiten) Open(w config.Window) error {
	const op = "platform.Open"
	if b.opened {
		return errs.InvalidArgument(op, w.Title, "backend already open")
	}

	if w.Fullscreen && w.Monitor >= 0 {
		monitors := ebiten.AppendMonitors(nil)
		if w.Monitor >= len(monitors) {
			return errs.InvalidArgument(op, w.Title, "monitor %d out of range (%d available)", w.Monitor, len(monitors))
		}
		ebiten.SetMonitor(monitors[w.Monitor])
	}

	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowResizingMode(resizingMode(w.Resizable))
	ebiten.SetWindowDecorated(w.Decorated)
	ebiten.SetWindowFloating(w.AlwaysOnTop)
	ebiten.SetWindowClosingHandled(true)
	if w.Maximized {
		ebiten.MaximizeWindow()
	}
	ebiten.SetFullscreen(w.Fullscreen)

	tps, vsync := pacing(w.FPS)
	ebiten.SetVsyncEnabled(vsync)
	ebiten.SetTPS(tps)

	b.window = w
	b.opened = true
	b.opts.logger.Info("window opened",
		"title", w.Title, "width", w.Width, "height", w.Height,
		"fullscreen", w.Fullscreen, "tps", tps, "vsync", vsync,
		"antialias", w.Multisampling > 0)
	return nil
}

// Run runs the ebiten loop until sched stops or ctx is done.
func (b *Ebiten) Run(ctx context.Context, sched *frame.Scheduler) error {
	if !b.opened {
		return errs.InvalidArgument("platform.Run", "", "backend not open")
	}
	input := b.opts.events
	if input == nil {
		input = NewInputPoller()
	}
	if b.opts.frames > 0 {
		input = closeAfter(input, b.opts.frames)
	}

	stop := context.AfterFunc(ctx, sched.Stop)
	defer stop()

	host := frame.NewHost(sched, input, b.window.Width, b.window.Height)
	runErr := ebiten.RunGame(host)
	if err := host.Wait(); err != nil {
		return err
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		return runErr
	}
	return nil
}

// Close marks the backend closed. Ebiten tears the window down when its
// loop returns.
func (b *Ebiten) Close() error {
	b.opened = false
	b.opts.logger.Debug("window closed")
	return nil
}

// pacing maps a frame-rate setting to ebiten's TPS and vsync settings.
func pacing(fps int) (tps int, vsync bool) {
	switch {
	case fps > 0:
		return fps, true
	case fps == config.Vsync:
		return ebiten.SyncWithFPS, true
	default:
		return ebiten.SyncWithFPS, false
	}
}

func resizingMode(resizable bool) ebiten.WindowResizingModeType {
	if resizable {
		return ebiten.WindowResizingModeEnabled
	}
	return ebiten.WindowResizingModeDisabled
}
