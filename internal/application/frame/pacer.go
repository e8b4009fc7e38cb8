package frame

import (
	"time"
)

// pacer decides when the next frame is due.
//
// A frame is due once interval has passed since the previous deadline.
// Overshoot of less than one interval is carried into the next deadline so
// the long-run rate matches the target; a longer stall resets the deadline
// to now instead of firing a burst of catch-up frames.
//
// A pacer is owned by one goroutine.
type pacer struct {
	interval time.Duration
	deadline time.Duration // time the previous frame was due
	prev     time.Duration // time the previous frame actually ran
	primed   bool
}

func newPacer(interval time.Duration) *pacer {
	return &pacer{interval: interval}
}

// ready reports whether a frame is due at now and, if so, returns the time
// since the previous frame ran. The first frame is always due and reports
// one interval.
func (p *pacer) ready(now time.Duration) (time.Duration, bool) {
	if !p.primed {
		p.primed = true
		p.deadline = now
		p.prev = now
		return p.interval, true
	}

	elapsed := now - p.deadline
	if elapsed < p.interval {
		return 0, false
	}
	if p.interval > 0 && elapsed < 2*p.interval {
		p.deadline = now - (elapsed - p.interval)
	} else {
		p.deadline = now
	}

	dt := now - p.prev
	p.prev = now
	return dt, true
}

// Interval converts a frame-rate setting to the minimum time between frames.
// Zero (vsync) and negative (unlimited) values have no interval.
func Interval(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}
