package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{Idle, "Idle"},
		{Running, "Running"},
		{Draining, "Draining"},
		{Stopped, "Stopped"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}

func TestStateConstants(t *testing.T) {
	// Verify the iota ordering
	assert.Equal(t, State(0), Idle)
	assert.Equal(t, State(1), Running)
	assert.Equal(t, State(2), Draining)
	assert.Equal(t, State(3), Stopped)
}

func TestMachine_Transition(t *testing.T) {
	tests := []struct {
		name    string
		path    []State
		wantErr bool
	}{
		{"full lifecycle", []State{Running, Draining, Stopped}, false},
		{"stop before start", []State{Stopped}, false},
		{"abort while running", []State{Running, Stopped}, false},
		{"no restart", []State{Running, Stopped, Running}, true},
		{"no drain from idle", []State{Draining}, true},
		{"no self loop", []State{Running, Running}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Machine
			var err error
			for _, s := range tt.path {
				if err = m.Transition(s); err != nil {
					break
				}
			}
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.path[len(tt.path)-1], m.Load())
		})
	}
}

func TestMachine_Stop(t *testing.T) {
	var m Machine
	assert.Equal(t, Idle, m.Load())
	assert.False(t, m.Live())

	require.NoError(t, m.Transition(Running))
	assert.True(t, m.Live())

	assert.True(t, m.Stop())
	assert.Equal(t, Draining, m.Load())
	assert.False(t, m.Live())
	assert.False(t, m.Stop(), "second stop is a no-op")

	m.Finish()
	m.Finish()
	assert.Equal(t, Stopped, m.Load())
}

func TestMachine_StopFromIdle(t *testing.T) {
	var m Machine
	assert.True(t, m.Stop())
	assert.Equal(t, Stopped, m.Load())
}

func TestMachine_ConcurrentStop(t *testing.T) {
	var m Machine
	require.NoError(t, m.Transition(Running))

	var wg sync.WaitGroup
	var mu sync.Mutex
	changed := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m.Stop() {
				mu.Lock()
				changed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, changed)
	assert.Equal(t, Draining, m.Load())
}
