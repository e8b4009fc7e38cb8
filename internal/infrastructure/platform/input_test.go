package platform

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/younwookim/lumen/internal/domain/event"
)

func collect(prev, cur InputState, first bool) []event.Event {
	var out []event.Event
	Translate(prev, cur, first, func(e event.Event) { out = append(out, e) })
	return out
}

func TestTranslate(t *testing.T) {
	base := InputState{
		Cursor:   image.Pt(10, 10),
		Focused:  true,
		Size:     image.Pt(640, 480),
		Position: image.Pt(100, 100),
	}

	tests := []struct {
		name     string
		prev     InputState
		cur      func(InputState) InputState
		first    bool
		expected []event.Event
	}{
		{
			name:     "no change",
			prev:     base,
			cur:      func(s InputState) InputState { return s },
			expected: nil,
		},
		{
			name: "key press and release",
			prev: base,
			cur: func(s InputState) InputState {
				s.KeysPressed = []ebiten.Key{ebiten.KeySpace}
				s.KeysReleased = []ebiten.Key{ebiten.KeyEscape}
				return s
			},
			expected: []event.Event{
				event.KeyEvent{Key: ebiten.KeySpace, Pressed: true},
				event.KeyEvent{Key: ebiten.KeyEscape, Pressed: false},
			},
		},
		{
			name: "mouse buttons",
			prev: base,
			cur: func(s InputState) InputState {
				s.ButtonsPressed = []ebiten.MouseButton{ebiten.MouseButtonLeft}
				s.ButtonsReleased = []ebiten.MouseButton{ebiten.MouseButtonRight}
				return s
			},
			expected: []event.Event{
				event.MouseButtonEvent{Button: ebiten.MouseButtonLeft, Pressed: true},
				event.MouseButtonEvent{Button: ebiten.MouseButtonRight, Pressed: false},
			},
		},
		{
			name: "cursor and wheel",
			prev: base,
			cur: func(s InputState) InputState {
				s.Cursor = image.Pt(12, 9)
				s.Wheel = event.Offset{Y: -1}
				return s
			},
			expected: []event.Event{
				event.MouseMovedEvent{Position: image.Pt(12, 9)},
				event.MouseScrolledEvent{Offset: event.Offset{Y: -1}},
			},
		},
		{
			name: "window changes",
			prev: base,
			cur: func(s InputState) InputState {
				s.Focused = false
				s.Size = image.Pt(800, 600)
				s.Position = image.Pt(0, 0)
				return s
			},
			expected: []event.Event{
				event.WindowFocusEvent{Focused: false},
				event.WindowResizedEvent{Size: image.Pt(800, 600)},
				event.WindowMovedEvent{Position: image.Pt(0, 0)},
			},
		},
		{
			name: "held close request is not repeated",
			prev: InputState{Closing: true},
			cur: func(s InputState) InputState {
				s.Closing = true
				return s
			},
			expected: []event.Event{
				event.MouseMovedEvent{Position: image.Pt(10, 10)},
				event.WindowFocusEvent{Focused: true},
				event.WindowResizedEvent{Size: image.Pt(640, 480)},
				event.WindowMovedEvent{Position: image.Pt(100, 100)},
			},
		},
		{
			name: "close request",
			prev: base,
			cur: func(s InputState) InputState {
				s.Closing = true
				return s
			},
			expected: []event.Event{event.WindowClosedEvent{}},
		},
		{
			name:  "first poll reports only edges",
			prev:  InputState{},
			first: true,
			cur: func(s InputState) InputState {
				s.KeysPressed = []ebiten.Key{ebiten.KeyA}
				s.Closing = true
				return s
			},
			expected: []event.Event{
				event.KeyEvent{Key: ebiten.KeyA, Pressed: true},
				event.WindowClosedEvent{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, collect(tt.prev, tt.cur(base), tt.first))
		})
	}
}
