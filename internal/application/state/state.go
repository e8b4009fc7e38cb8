// Package state tracks the runtime lifecycle: Idle, Running, Draining and
// Stopped.
package state

import (
	"fmt"
	"sync/atomic"
)

// State represents where the runtime is in its lifecycle
type State int32

const (
	// Idle: initialized, loop not started.
	Idle State = iota
	// Running: the frame loop is active.
	Running
	// Draining: a stop was requested and the current frame is finishing.
	Draining
	// Stopped: the loop exited and teardown ran.
	Stopped
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Draining:
		return "Draining"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// next lists the legal forward transitions. Stopped is terminal.
var next = map[State][]State{
	Idle:     {Running, Stopped},
	Running:  {Draining, Stopped},
	Draining: {Stopped},
}

// Machine holds a State that is safe to read and advance from any goroutine.
type Machine struct {
	v atomic.Int32
}

// Load returns the current state.
func (m *Machine) Load() State { return State(m.v.Load()) }

// Transition moves from the current state to to. It fails when the move is
// not a legal forward transition.
func (m *Machine) Transition(to State) error {
	for {
		from := m.Load()
		if !allowed(from, to) {
			return fmt.Errorf("state: illegal transition %s -> %s", from, to)
		}
		if m.v.CompareAndSwap(int32(from), int32(to)) {
			return nil
		}
	}
}

// Stop requests a graceful stop: Running becomes Draining, Idle becomes
// Stopped. It reports whether this call changed the state.
func (m *Machine) Stop() bool {
	for {
		from := m.Load()
		var to State
		switch from {
		case Running:
			to = Draining
		case Idle:
			to = Stopped
		default:
			return false
		}
		if m.v.CompareAndSwap(int32(from), int32(to)) {
			return true
		}
	}
}

// Finish moves to Stopped from any state. Later calls do nothing.
func (m *Machine) Finish() { m.v.Store(int32(Stopped)) }

// Live reports whether the loop should keep going.
func (m *Machine) Live() bool { return m.Load() == Running }

func allowed(from, to State) bool {
	for _, s := range next[from] {
		if s == to {
			return true
		}
	}
	return false
}
