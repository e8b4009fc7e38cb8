package frame

import (
	"context"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"
)

// Host implements ebiten.Game on top of a Scheduler, for backends where
// ebiten owns the loop and paces it with TPS and vsync.
//
// In SingleThreaded mode Update pumps input and updates the scenes; in
// DualThreaded mode the first Update starts the scheduler's update worker and
// later calls only pump input. Draw renders under the frame lock in both
// modes.
type Host struct {
	sched   *Scheduler
	input   EventSource
	screenW int
	screenH int

	once   sync.Once
	worker *errgroup.Group
	pace   *pacer
}

// NewHost creates a host that reads events from input and reports a logical
// screen of screenW x screenH.
func NewHost(sched *Scheduler, input EventSource, screenW, screenH int) *Host {
	return &Host{
		sched:   sched,
		input:   input,
		screenW: screenW,
		screenH: screenH,
		pace:    newPacer(0),
	}
}

// Update pumps input and advances the scenes.
// Implements ebiten.Game interface.
func (h *Host) Update() error {
	h.once.Do(h.start)
	if !h.sched.Live() {
		return ebiten.Termination
	}

	h.sched.Pump(h.input)
	if !h.sched.Live() {
		return ebiten.Termination
	}

	if h.sched.Mode() == DualThreaded {
		return nil
	}
	dt, _ := h.pace.ready(h.sched.clock.Now())
	if err := h.sched.Step(dt); err != nil {
		return ebiten.Termination
	}
	return nil
}

// Draw renders every active scene.
// Implements ebiten.Game interface.
func (h *Host) Draw(screen *ebiten.Image) {
	if !h.sched.Live() {
		return
	}
	h.sched.Render(screen)
}

// Layout returns the logical screen dimensions.
// Implements ebiten.Game interface.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.screenW, h.screenH
}

// Wait joins the update worker, if one was started, and returns the error
// that stopped the loop.
func (h *Host) Wait() error {
	h.sched.Stop()
	if h.worker != nil {
		if err := h.worker.Wait(); err != nil {
			return err
		}
	}
	return h.sched.Err()
}

func (h *Host) start() {
	if err := h.sched.Start(); err != nil {
		h.sched.logger.Warn("host start", "error", err)
		return
	}
	if h.sched.scenes.ActiveCount() == 0 {
		h.sched.logger.Warn("no active scene, skipping frame loop")
		h.sched.Stop()
		return
	}
	if h.sched.Mode() == DualThreaded {
		g := &errgroup.Group{}
		g.Go(func() error {
			return h.sched.updateLoop(context.Background())
		})
		h.worker = g
	}
}
