// Package frame drives the per-frame loop: update every active scene, draw
// them, present the target and pump pending events, paced to a target frame
// rate.
//
// Two variants share one Scheduler:
//   - SingleThreaded runs update, draw, present and event pumping in
//     sequence on the calling goroutine;
//   - DualThreaded runs updates on a worker goroutine and rendering plus
//     event pumping on the calling goroutine. Update, render and event
//     delivery each hold the frame lock, so scene state is never read and
//     written at the same time.
package frame

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"

	"github.com/younwookim/lumen/internal/application/state"
	"github.com/younwookim/lumen/internal/domain/event"
	"github.com/younwookim/lumen/internal/infrastructure/logging"
)

// Mode selects the threading variant.
type Mode int

const (
	SingleThreaded Mode = iota
	DualThreaded
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case SingleThreaded:
		return "single"
	case DualThreaded:
		return "dual"
	default:
		return "unknown"
	}
}

// Scenes is the set of active scenes the scheduler drives.
// *scene.Manager satisfies it.
type Scenes interface {
	Update(dt float64) error
	Draw(screen *ebiten.Image)
	Dispatch(e event.Event)
	ActiveCount() int
}

// EventSource yields pending input and window events.
type EventSource interface {
	PollEvents(dispatch event.Func)
}

// Window is a render target the scheduler drives directly.
type Window interface {
	EventSource
	// Target returns the image scenes draw into this frame.
	Target() *ebiten.Image
	// Present shows the finished frame.
	Present() error
}

// Stats is a snapshot of scheduler counters.
type Stats struct {
	Frames    int64
	Updates   int64
	Polls     int64 // event polls, one per input tick
	LastFrame time.Duration // wall time spent on the most recent frame
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithFPS sets the target frame rate. Zero means vsync, a negative value
// means unlimited. In both cases the scheduler itself does not wait.
func WithFPS(fps int) Option {
	return func(s *Scheduler) { s.fps = fps }
}

// WithMode selects the threading variant.
func WithMode(m Mode) Option {
	return func(s *Scheduler) { s.mode = m }
}

// WithLocker replaces the frame lock.
func WithLocker(l sync.Locker) Option {
	return func(s *Scheduler) { s.lock = l }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithFrameLimit stops the scheduler after n rendered frames. Zero means no
// limit.
func WithFrameLimit(n int64) Option {
	return func(s *Scheduler) { s.limit = n }
}

// WithPollLimit stops the scheduler after n event polls. Zero means no
// limit. A replay bounds itself this way without injecting a close event.
func WithPollLimit(n int64) Option {
	return func(s *Scheduler) { s.pollLimit = n }
}

// WithFrameObserver calls fn after every rendered frame.
func WithFrameObserver(fn func(Stats)) Option {
	return func(s *Scheduler) { s.observer = fn }
}

// WithEventTap calls fn with every event before it is dispatched, along with
// the index of the poll that delivered it. Polls follow input ticks, which
// under ebiten can run at a different rate than rendered frames.
func WithEventTap(fn func(poll int64, e event.Event)) Option {
	return func(s *Scheduler) { s.tap = fn }
}

// Scheduler runs the frame loop.
type Scheduler struct {
	scenes    Scenes
	clock     Clock
	fps       int
	mode      Mode
	lock      sync.Locker
	logger    *slog.Logger
	limit     int64
	pollLimit int64
	observer  func(Stats)
	tap       func(int64, event.Event)

	machine   state.Machine
	pace      *pacer // owned by the rendering goroutine
	frames    atomic.Int64
	updates   atomic.Int64
	polls     atomic.Int64
	lastFrame atomic.Int64

	errMu sync.Mutex
	err   error
}

// New creates a scheduler over scenes.
func New(scenes Scenes, opts ...Option) *Scheduler {
	s := &Scheduler{
		scenes: scenes,
		fps:    -1,
		mode:   SingleThreaded,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = NewSystemClock()
	}
	if s.lock == nil {
		s.lock = &sync.Mutex{}
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}
	s.pace = newPacer(Interval(s.fps))
	return s
}

// FPS returns the configured frame-rate setting.
func (s *Scheduler) FPS() int { return s.fps }

// Mode returns the threading variant.
func (s *Scheduler) Mode() Mode { return s.mode }

// State returns the lifecycle state.
func (s *Scheduler) State() state.State { return s.machine.Load() }

// Live reports whether the loop should keep running.
func (s *Scheduler) Live() bool { return s.machine.Live() }

// Start moves the scheduler from Idle to Running.
func (s *Scheduler) Start() error {
	if err := s.machine.Transition(state.Running); err != nil {
		return err
	}
	s.logger.Info("frame loop started", "mode", s.mode, "fps", s.fps)
	return nil
}

// Stop asks the loop to finish the current frame and exit. It is safe to
// call from any goroutine and from inside scene hooks.
func (s *Scheduler) Stop() {
	if s.machine.Stop() {
		s.logger.Info("frame loop stopping", "frames", s.frames.Load())
	}
}

// Finish marks the scheduler Stopped once teardown is complete.
func (s *Scheduler) Finish() { s.machine.Finish() }

// Err returns the scene error that stopped the loop, if any.
func (s *Scheduler) Err() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.err
}

// Stats returns a snapshot of the counters.
func (s *Scheduler) Stats() Stats {
	return Stats{
		Frames:    s.frames.Load(),
		Updates:   s.updates.Load(),
		Polls:     s.polls.Load(),
		LastFrame: time.Duration(s.lastFrame.Load()),
	}
}

// Run drives the loop until the scheduler leaves Running or ctx is done.
// It returns the scene error that stopped the loop, if any. With no active
// scene the loop runs zero frames.
func (s *Scheduler) Run(ctx context.Context, win Window) error {
	if err := s.Start(); err != nil {
		return err
	}
	if s.scenes.ActiveCount() == 0 {
		s.logger.Warn("no active scene, skipping frame loop")
		s.Stop()
		return nil
	}

	if s.mode == DualThreaded {
		return s.runDual(ctx, win)
	}

	for s.Live() {
		if ctx.Err() != nil {
			s.Stop()
			break
		}
		ran, err := s.Tick(win)
		if err != nil {
			return err
		}
		if !ran {
			runtime.Gosched()
		}
	}
	return s.Err()
}

// Tick performs one single-threaded iteration if a frame is due: clear the
// target, update and draw every active scene, present, then pump events.
// It reports whether a frame ran.
func (s *Scheduler) Tick(win Window) (bool, error) {
	dt, due := s.pace.ready(s.clock.Now())
	if !due {
		return false, nil
	}
	began := time.Now()

	s.lock.Lock()
	target := win.Target()
	target.Clear()
	err := s.scenes.Update(dt.Seconds())
	if err == nil {
		s.scenes.Draw(target)
	}
	s.lock.Unlock()
	if err != nil {
		s.fail(err)
		return true, err
	}
	s.updates.Add(1)

	if err := win.Present(); err != nil {
		s.logger.Warn("present failed", "error", err)
	}
	s.Pump(win)
	s.endFrame(began)
	return true, nil
}

// Pump delivers every pending event from src to the active scenes. Each
// delivery holds the frame lock. A WindowClosedEvent is delivered and then
// stops the scheduler; events polled after that are dropped.
func (s *Scheduler) Pump(src EventSource) {
	poll := s.polls.Load()
	src.PollEvents(func(e event.Event) { s.deliver(poll, e) })
	if n := s.polls.Add(1); s.pollLimit > 0 && n >= s.pollLimit {
		s.logger.Debug("poll limit reached", "polls", n)
		s.Stop()
	}
}

// Step runs the update side of one frame under the frame lock. Backends
// that own the loop call it once per tick.
func (s *Scheduler) Step(dt time.Duration) error {
	s.lock.Lock()
	err := s.scenes.Update(dt.Seconds())
	s.lock.Unlock()
	if err != nil {
		s.fail(err)
		return err
	}
	s.updates.Add(1)
	return nil
}

// Render runs the draw side of one frame under the frame lock and counts it.
func (s *Scheduler) Render(target *ebiten.Image) {
	began := time.Now()
	s.lock.Lock()
	s.scenes.Draw(target)
	s.lock.Unlock()
	s.endFrame(began)
}

func (s *Scheduler) runDual(ctx context.Context, win Window) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.updateLoop(ctx)
	})

	for s.Live() {
		if ctx.Err() != nil {
			s.Stop()
			break
		}
		if _, due := s.pace.ready(s.clock.Now()); !due {
			runtime.Gosched()
			continue
		}
		began := time.Now()

		s.lock.Lock()
		target := win.Target()
		target.Clear()
		s.scenes.Draw(target)
		if err := win.Present(); err != nil {
			s.logger.Warn("present failed", "error", err)
		}
		s.lock.Unlock()

		s.Pump(win)
		s.endFrame(began)
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return s.Err()
}

// updateLoop runs on the worker goroutine with its own pacer.
func (s *Scheduler) updateLoop(ctx context.Context) error {
	p := newPacer(Interval(s.fps))
	for s.Live() {
		if ctx.Err() != nil {
			return nil
		}
		dt, due := p.ready(s.clock.Now())
		if !due {
			runtime.Gosched()
			continue
		}
		if err := s.Step(dt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) deliver(poll int64, e event.Event) {
	if e == nil || !s.Live() {
		return
	}
	if s.tap != nil {
		s.tap(poll, e)
	}
	s.lock.Lock()
	s.scenes.Dispatch(e)
	s.lock.Unlock()

	if _, ok := e.(event.WindowClosedEvent); ok {
		s.logger.Info("window closed")
		s.Stop()
	}
}

func (s *Scheduler) endFrame(began time.Time) {
	n := s.frames.Add(1)
	s.lastFrame.Store(int64(time.Since(began)))
	if s.observer != nil {
		s.observer(s.Stats())
	}
	if s.limit > 0 && n >= s.limit {
		s.logger.Debug("frame limit reached", "frames", n)
		s.Stop()
	}
}

func (s *Scheduler) fail(err error) {
	s.errMu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.errMu.Unlock()
	s.logger.Error("scene update failed", "error", err)
	s.Stop()
}
