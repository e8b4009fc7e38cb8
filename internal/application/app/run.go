package app

import (
	"context"
	"log/slog"

	"github.com/younwookim/lumen/internal/application/frame"
	"github.com/younwookim/lumen/internal/domain/errs"
	"github.com/younwookim/lumen/internal/infrastructure/config"
	"github.com/younwookim/lumen/internal/infrastructure/logging"
)

// Exit codes returned by Run.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Application is implemented by the program being run.
type Application interface {
	// ConfigureWindow adjusts the window configuration before the backend
	// opens. Returning false aborts the run.
	ConfigureWindow(w *config.Window) bool

	// InitResources registers resources and scenes and activates the first
	// scenes. Returning false aborts the run after teardown.
	InitResources(ctx *Context) bool
}

// Backend owns the window, the graphics device and input.
type Backend interface {
	Open(w config.Window) error
	// Run drives sched until it stops, returning the error that stopped it.
	Run(ctx context.Context, sched *frame.Scheduler) error
	Close() error
}

// Option configures Run.
type Option func(*options)

type options struct {
	window    config.Window
	logger    *slog.Logger
	frameOpts []frame.Option
	onContext func(*Context)
}

// WithWindow sets the configuration handed to ConfigureWindow. The default
// is config.DefaultWindow.
func WithWindow(w config.Window) Option {
	return func(o *options) { o.window = w }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithFrameOptions appends scheduler options. They apply after the ones
// derived from the window configuration.
func WithFrameOptions(opts ...frame.Option) Option {
	return func(o *options) { o.frameOpts = append(o.frameOpts, opts...) }
}

// WithContextHook calls fn with the Context once it is built, before
// InitResources.
func WithContextHook(fn func(*Context)) Option {
	return func(o *options) { o.onContext = fn }
}

// Run runs application on backend and returns the process exit code: 0 on
// graceful shutdown, 1 when initialization fails or a scene returns an error.
func Run(ctx context.Context, application Application, backend Backend, opts ...Option) int {
	o := options{window: config.DefaultWindow()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Nop()
	}
	logger := o.logger

	w := o.window
	if !application.ConfigureWindow(&w) {
		logger.Error("window configuration rejected")
		return ExitFailure
	}
	if err := w.Validate(); err != nil {
		logger.Error("invalid window configuration", "error", err)
		return ExitFailure
	}

	if err := backend.Open(w); err != nil {
		err = errs.BackendInit("app.Run", err)
		logger.Error("backend failed to open", "error", err)
		return ExitFailure
	}

	c := newContext(w, logger)
	mode := frame.SingleThreaded
	if w.Threaded {
		mode = frame.DualThreaded
	}
	frameOpts := append([]frame.Option{
		frame.WithFPS(w.FPS),
		frame.WithMode(mode),
		frame.WithLogger(c.logger),
	}, o.frameOpts...)
	c.sched = frame.New(c.Scenes, frameOpts...)
	if o.onContext != nil {
		o.onContext(c)
	}

	code := ExitOK
	if !application.InitResources(c) {
		c.logger.Error("resource initialization failed")
		code = ExitFailure
	} else {
		c.logger.Info("application started",
			"width", w.Width, "height", w.Height, "fps", w.FPS, "mode", mode,
			"scenes", c.Scenes.ActiveCount())
		if err := backend.Run(ctx, c.sched); err != nil {
			c.logger.Error("frame loop failed", "error", err)
			code = ExitFailure
		}
	}

	c.teardown(backend)
	return code
}
