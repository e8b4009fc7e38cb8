package event

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindKey, "Key"},
		{KindMouseButton, "MouseButton"},
		{KindMouseMoved, "MouseMoved"},
		{KindMouseScrolled, "MouseScrolled"},
		{KindWindowFocus, "WindowFocus"},
		{KindWindowClosed, "WindowClosed"},
		{KindWindowResized, "WindowResized"},
		{KindWindowMoved, "WindowMoved"},
		{Kind(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestVariants_ReportStableKind(t *testing.T) {
	tests := []struct {
		ev   Event
		kind Kind
	}{
		{KeyEvent{Key: ebiten.KeyA, Pressed: true}, KindKey},
		{MouseButtonEvent{Button: ebiten.MouseButtonLeft}, KindMouseButton},
		{MouseMovedEvent{Position: image.Pt(3, 4)}, KindMouseMoved},
		{MouseScrolledEvent{Offset: Offset{Y: -1}}, KindMouseScrolled},
		{WindowFocusEvent{Focused: true}, KindWindowFocus},
		{WindowClosedEvent{}, KindWindowClosed},
		{WindowResizedEvent{Size: image.Pt(640, 480)}, KindWindowResized},
		{WindowMovedEvent{Position: image.Pt(10, 20)}, KindWindowMoved},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.ev.Kind())
		})
	}
}

// recordingHandler counts calls per variant and keeps the last key event.
type recordingHandler struct {
	NopHandler
	keys    int
	closes  int
	resizes int
	lastKey KeyEvent
}

func (h *recordingHandler) HandleKey(e KeyEvent) {
	h.keys++
	h.lastKey = e
}

func (h *recordingHandler) HandleWindowClosed(WindowClosedEvent) {
	h.closes++
}

func (h *recordingHandler) HandleWindowResized(WindowResizedEvent) {
	h.resizes++
}

func TestDispatch_RoutesToMatchingMethod(t *testing.T) {
	h := &recordingHandler{}

	assert.True(t, Dispatch(KeyEvent{Key: ebiten.KeyEscape, Pressed: true}, h))
	assert.True(t, Dispatch(WindowClosedEvent{}, h))
	assert.True(t, Dispatch(MouseMovedEvent{}, h), "ignored variants still dispatch")

	assert.Equal(t, 1, h.keys)
	assert.Equal(t, ebiten.KeyEscape, h.lastKey.Key)
	assert.True(t, h.lastKey.Pressed)
	assert.Equal(t, 1, h.closes)
	assert.Equal(t, 0, h.resizes)
}

func TestDispatch_NilEvent(t *testing.T) {
	h := &recordingHandler{}

	assert.False(t, Dispatch(nil, h))
	assert.Equal(t, 0, h.keys)
}
