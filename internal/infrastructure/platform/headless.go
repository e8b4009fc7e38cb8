package platform

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/lumen/internal/application/frame"
	"github.com/younwookim/lumen/internal/domain/errs"
	"github.com/younwookim/lumen/internal/domain/event"
	"github.com/younwookim/lumen/internal/infrastructure/config"
)

// Headless renders into an offscreen image and drives the scheduler
// itself. Events come from WithEvents, typically a replay; WithFrames bounds
// the run.
type Headless struct {
	opts     options
	window   config.Window
	target   *ebiten.Image
	input    frame.EventSource
	presents int64
}

// NewHeadless creates a new headless backend
func NewHeadless(opts ...Option) *Headless {
	return &Headless{opts: buildOptions(opts)}
}

// Open allocates the offscreen target.
func (h *Headless) Open(w config.Window) error {
	if h.target != nil {
		return errs.InvalidArgument("platform.Open", w.Title, "backend already open")
	}
	h.window = w
	h.target = ebiten.NewImage(w.Width, w.Height)

	var input frame.EventSource = noEvents{}
	if h.opts.events != nil {
		input = h.opts.events
	}
	if h.opts.frames > 0 {
		input = closeAfter(input, h.opts.frames)
	}
	h.input = input
	h.opts.logger.Info("headless target opened", "width", w.Width, "height", w.Height, "frames", h.opts.frames)
	return nil
}

// Run drives sched on the calling goroutine.
func (h *Headless) Run(ctx context.Context, sched *frame.Scheduler) error {
	if h.target == nil {
		return errs.InvalidArgument("platform.Run", "", "backend not open")
	}
	return sched.Run(ctx, h)
}

// Close releases the offscreen target.
func (h *Headless) Close() error {
	if h.target != nil {
		h.target.Deallocate()
		h.target = nil
	}
	h.opts.logger.Debug("headless target closed", "presents", h.presents)
	return nil
}

// Target returns the offscreen image.
func (h *Headless) Target() *ebiten.Image { return h.target }

// Present counts the frame.
func (h *Headless) Present() error {
	h.presents++
	return nil
}

// Presents returns the number of frames presented.
func (h *Headless) Presents() int64 { return h.presents }

// PollEvents forwards the configured event source.
func (h *Headless) PollEvents(dispatch event.Func) {
	h.input.PollEvents(dispatch)
}

type noEvents struct{}

func (noEvents) PollEvents(event.Func) {}

// closingSource reports a window close on poll n-1, so the scheduler stops
// after n frames.
type closingSource struct {
	src   frame.EventSource
	n     int64
	polls int64
}

func closeAfter(src frame.EventSource, n int64) frame.EventSource {
	return &closingSource{src: src, n: n}
}

func (c *closingSource) PollEvents(dispatch event.Func) {
	c.src.PollEvents(dispatch)
	c.polls++
	if c.polls == c.n {
		dispatch(event.WindowClosedEvent{})
	}
}
