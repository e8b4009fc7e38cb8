package platform

import (
	"context"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/lumen/internal/application/frame"
	"github.com/younwookim/lumen/internal/domain/errs"
	"github.com/younwookim/lumen/internal/domain/event"
	"github.com/younwookim/lumen/internal/infrastructure/config"
)

// countingScenes is a test double for frame.Scenes interface
type countingScenes struct {
	updates int
	draws   int
	events  []event.Event
}

func (c *countingScenes) Update(dt float64) error {
	c.updates++
	return nil
}

func (c *countingScenes) Draw(screen *ebiten.Image) { c.draws++ }
func (c *countingScenes) Dispatch(e event.Event)    { c.events = append(c.events, e) }
func (c *countingScenes) ActiveCount() int          { return 1 }

// scriptedSource delivers one batch per poll
type scriptedSource struct {
	batches [][]event.Event
	polls   int
}

func (s *scriptedSource) PollEvents(dispatch event.Func) {
	if s.polls < len(s.batches) {
		for _, e := range s.batches[s.polls] {
			dispatch(e)
		}
	}
	s.polls++
}

func smallWindow() config.Window {
	w := config.DefaultWindow()
	w.Width, w.Height = 32, 24
	return w
}

func TestPacing(t *testing.T) {
	tests := []struct {
		fps   int
		tps   int
		vsync bool
	}{
		{60, 60, true},
		{144, 144, true},
		{config.Vsync, ebiten.SyncWithFPS, true},
		{config.UnlimitedFPS, ebiten.SyncWithFPS, false},
		{-20, ebiten.SyncWithFPS, false},
	}

	for _, tt := range tests {
		tps, vsync := pacing(tt.fps)
		assert.Equal(t, tt.tps, tps, "fps=%d", tt.fps)
		assert.Equal(t, tt.vsync, vsync, "fps=%d", tt.fps)
	}
}

func TestResizingMode(t *testing.T) {
	assert.Equal(t, ebiten.WindowResizingModeEnabled, resizingMode(true))
	assert.Equal(t, ebiten.WindowResizingModeDisabled, resizingMode(false))
}

func TestHeadless_ClosesAfterFrames(t *testing.T) {
	scenes := &countingScenes{}
	h := NewHeadless(WithFrames(4))
	require.NoError(t, h.Open(smallWindow()))
	sched := frame.New(scenes)

	require.NoError(t, h.Run(context.Background(), sched))
	require.NoError(t, h.Close())

	assert.Equal(t, int64(4), sched.Stats().Frames)
	assert.Equal(t, int64(4), h.Presents())
	assert.Equal(t, 4, scenes.updates)
	require.Len(t, scenes.events, 1)
	assert.Equal(t, event.WindowClosedEvent{}, scenes.events[0])
	assert.Nil(t, h.Target())
}

func TestHeadless_ForwardsEvents(t *testing.T) {
	scenes := &countingScenes{}
	src := &scriptedSource{batches: [][]event.Event{
		{event.KeyEvent{Key: ebiten.KeyTab, Pressed: true}},
		nil,
		{event.WindowClosedEvent{}},
	}}
	h := NewHeadless(WithEvents(src))
	require.NoError(t, h.Open(smallWindow()))

	require.NoError(t, h.Run(context.Background(), frame.New(scenes)))

	assert.Equal(t, 3, src.polls)
	assert.Len(t, scenes.events, 2)
}

func TestHeadless_OpenTwice(t *testing.T) {
	h := NewHeadless()
	require.NoError(t, h.Open(smallWindow()))
	assert.True(t, errs.IsInvalidArgument(h.Open(smallWindow())))
	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
}

func TestHeadless_RunBeforeOpen(t *testing.T) {
	err := NewHeadless().Run(context.Background(), frame.New(&countingScenes{}))
	assert.True(t, errs.IsInvalidArgument(err))
}

func TestCloseAfter(t *testing.T) {
	src := closeAfter(noEvents{}, 2)
	var got []event.Event
	for i := 0; i < 4; i++ {
		src.PollEvents(func(e event.Event) { got = append(got, e) })
	}
	assert.Equal(t, []event.Event{event.WindowClosedEvent{}}, got)
}
