// Package app wires the runtime together: it asks the application for its
// window configuration, opens a backend, hands the application a Context to
// register resources and scenes, runs the frame loop and tears everything
// down in a fixed order.
package app

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/younwookim/lumen/internal/application/frame"
	"github.com/younwookim/lumen/internal/application/scene"
	"github.com/younwookim/lumen/internal/application/state"
	"github.com/younwookim/lumen/internal/domain/resource"
	"github.com/younwookim/lumen/internal/infrastructure/config"
)

// Context is everything a running application can reach: its resources,
// its scenes and a way to stop. One Context exists per Run and is passed
// explicitly; there is no package-level instance.
type Context struct {
	ID        uuid.UUID
	Window    config.Window
	Resources *resource.Registry
	Scenes    *scene.Manager

	logger *slog.Logger
	sched  *frame.Scheduler

	audioOnce sync.Once
	audio     *audio.Context
}

func newContext(w config.Window, logger *slog.Logger) *Context {
	id := uuid.Must(uuid.NewV7())
	logger = logger.With("app", id.String())
	return &Context{
		ID:        id,
		Window:    w,
		Resources: resource.New(resource.WithLogger(logger)),
		Scenes:    scene.NewManager(logger),
		logger:    logger,
	}
}

// Logger returns the application logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Audio returns the process audio context, creating it on first use at the
// configured sample rate. Ebiten allows one audio context per process, so an
// existing one is reused.
func (c *Context) Audio() *audio.Context {
	c.audioOnce.Do(func() {
		if cur := audio.CurrentContext(); cur != nil {
			c.audio = cur
			return
		}
		c.audio = audio.NewContext(c.Window.AudioSampleRate)
		c.logger.Debug("audio context created", "sampleRate", c.Window.AudioSampleRate)
	})
	return c.audio
}

// CloseApplication asks the frame loop to stop after the current frame.
// It is safe to call from any goroutine and from scene hooks.
func (c *Context) CloseApplication() {
	c.sched.Stop()
}

// State returns the lifecycle state of the frame loop.
func (c *Context) State() state.State {
	return c.sched.State()
}

// Stats returns the frame loop counters.
func (c *Context) Stats() frame.Stats {
	return c.sched.Stats()
}

// teardown runs after the loop exits: scenes, then resources, then the
// backend. The scheduler is marked Stopped last.
func (c *Context) teardown(backend Backend) {
	c.sched.Stop()

	c.Scenes.Close()
	if err := c.Resources.Close(); err != nil {
		c.logger.Warn("resource release failed", "error", err)
	}
	if err := backend.Close(); err != nil {
		c.logger.Warn("backend close failed", "error", err)
	}

	c.sched.Finish()
	c.logger.Info("application stopped", "frames", c.sched.Stats().Frames)
}
