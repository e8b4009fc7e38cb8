package cli

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/younwookim/lumen/internal/application/app"
	"github.com/younwookim/lumen/internal/application/frame"
	"github.com/younwookim/lumen/internal/application/replay"
	"github.com/younwookim/lumen/internal/demo"
	"github.com/younwookim/lumen/internal/infrastructure/config"
	"github.com/younwookim/lumen/internal/infrastructure/platform"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Config   string
	FPS      int
	Threaded bool
	Headless bool
	Frames   int64
	Record   string
	Replay   string
	Title    string
	Font     string
	Music    string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the demo application",
		Long: `Run the demo application: a shaded triangle with a HUD overlay.

Window settings come from --config (JSON or YAML), falling back to the
built-in configuration. Flags given explicitly override the file.

Example:
  lumen run --fps 60
  lumen run --config ./lumen.yaml --threaded
  lumen run --record session.json
  lumen run --headless --replay session.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "path to a window config file")
	cmd.Flags().IntVar(&opts.FPS, "fps", config.UnlimitedFPS, "target frame rate (0 vsync, <0 unlimited)")
	cmd.Flags().BoolVar(&opts.Threaded, "threaded", false, "run updates on a separate goroutine")
	cmd.Flags().BoolVar(&opts.Headless, "headless", false, "render offscreen without a window")
	cmd.Flags().Int64Var(&opts.Frames, "frames", 0, "close after this many frames (0 = no limit)")
	cmd.Flags().StringVar(&opts.Record, "record", "", "record delivered events to this file")
	cmd.Flags().StringVar(&opts.Replay, "replay", "", "play back events from this file instead of live input")
	cmd.Flags().StringVar(&opts.Title, "title", "", "window title")
	cmd.Flags().StringVar(&opts.Font, "font", "", "system font family for the HUD")
	cmd.Flags().StringVar(&opts.Music, "music", "", "looping background music (wav, ogg, mp3)")

	return cmd
}

func runApp(cmd *cobra.Command, opts *RunOptions) error {
	file, err := opts.load(cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if !cmd.Flags().Changed("log-level") && file.Log.Level != "" {
		opts.LogLevel = file.Log.Level
	}
	if !cmd.Flags().Changed("log-json") {
		opts.LogJSON = opts.LogJSON || file.Log.JSON
	}
	logger := opts.logger(cmd.ErrOrStderr())
	w := file.Window

	var frameOpts []frame.Option
	var platformOpts []platform.Option
	platformOpts = append(platformOpts, platform.WithLogger(logger))

	if opts.Replay != "" {
		data, err := replay.LoadFile(opts.Replay)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load replay", err)
		}
		platformOpts = append(platformOpts, platform.WithEvents(replay.NewReplayer(*data)))
		// The recording carries its own close event, if there was one.
		if opts.Frames == 0 && data.Frames > 0 {
			frameOpts = append(frameOpts, frame.WithPollLimit(data.Frames))
		}
		logger.Info("replaying", "file", opts.Replay, "session", data.Session, "frames", data.Frames, "events", len(data.Events))
	}
	if opts.Frames > 0 {
		platformOpts = append(platformOpts, platform.WithFrames(opts.Frames))
	}
	if opts.Headless {
		// A stepped clock keeps headless timing independent of host speed.
		frameOpts = append(frameOpts, frame.WithClock(frame.NewStepClock(headlessStep(w.FPS))))
	}

	var rec *replay.Recorder
	if opts.Record != "" {
		rec = replay.NewRecorder()
		frameOpts = append(frameOpts, frame.WithEventTap(rec.Record))
	}

	var backend app.Backend
	if opts.Headless {
		backend = platform.NewHeadless(platformOpts...)
	} else {
		backend = platform.NewEbiten(platformOpts...)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var appCtx *app.Context
	application := demo.New(demo.Config{Title: opts.Title, FontFamily: opts.Font, MusicPath: opts.Music})
	code := app.Run(ctx, application, backend,
		app.WithWindow(w),
		app.WithLogger(logger),
		app.WithFrameOptions(frameOpts...),
		app.WithContextHook(func(c *app.Context) { appCtx = c }),
	)
	if err := application.Close(); err != nil {
		logger.Warn("closing demo", "error", err)
	}

	if rec != nil {
		if appCtx != nil {
			rec.ObserveFrames(appCtx.Stats().Polls)
		}
		rec.Stop()
		if n := rec.Dropped(); n > 0 {
			logger.Warn("events missing from recording", "dropped", n)
		}
		if err := rec.Save(opts.Record); err != nil {
			return WrapExitError(ExitFailure, "failed to save recording", err)
		}
		logger.Info("recording saved", "file", opts.Record, "events", len(rec.Data().Events))
	}

	if code != app.ExitOK {
		return NewExitError(code, "application exited with failure")
	}
	return nil
}

// load resolves the configuration: --config, else the built-in file, else
// defaults; then flags given explicitly.
func (o *RunOptions) load(cmd *cobra.Command) (config.File, error) {
	file := config.Default()
	switch {
	case o.Config != "":
		loaded, err := config.NewLoader(filepath.Dir(o.Config)).Load(filepath.Base(o.Config))
		if err != nil {
			return file, err
		}
		file = *loaded
	case o.Defaults != nil:
		loaded, err := config.NewFSLoader(o.Defaults, ".").Load(DefaultConfig)
		if err != nil {
			return file, err
		}
		file = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		file.Window.FPS = o.FPS
	}
	if flags.Changed("threaded") {
		file.Window.Threaded = o.Threaded
	}
	if o.Title != "" {
		file.Window.Title = o.Title
	}
	return file, file.Window.Validate()
}

// headlessStep is the clock step for headless runs: one frame interval, or
// a nominal 60 Hz frame when the rate is not fixed.
func headlessStep(fps int) time.Duration {
	if d := frame.Interval(fps); d > 0 {
		return d
	}
	return frame.Interval(60)
}
