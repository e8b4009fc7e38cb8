package platform

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/lumen/internal/domain/event"
)

// InputState holds the input and window state read once per tick
type InputState struct {
	KeysPressed     []ebiten.Key
	KeysReleased    []ebiten.Key
	ButtonsPressed  []ebiten.MouseButton
	ButtonsReleased []ebiten.MouseButton
	Cursor          image.Point
	Wheel           event.Offset
	Focused         bool
	Size            image.Point
	Position        image.Point
	Closing         bool
}

var mouseButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonMiddle,
	ebiten.MouseButtonRight,
	ebiten.MouseButton3,
	ebiten.MouseButton4,
}

// InputPoller turns ebiten's polled input into events.
//
// Ebiten reports state, not events: PollEvents reads the current state,
// compares it with the previous tick and emits one event per change.
type InputPoller struct {
	prev   InputState
	primed bool
	keys   []ebiten.Key
}

// NewInputPoller creates a new input poller
func NewInputPoller() *InputPoller {
	return &InputPoller{}
}

// PollEvents reads the current input state and dispatches the changes since
// the previous call. It must run on ebiten's update goroutine.
func (p *InputPoller) PollEvents(dispatch event.Func) {
	cur := p.read()
	Translate(p.prev, cur, !p.primed, dispatch)
	p.prev = cur
	p.primed = true
}

// read gets the current input state
func (p *InputPoller) read() InputState {
	var s InputState

	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	s.KeysPressed = append(s.KeysPressed, p.keys...)
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	s.KeysReleased = append(s.KeysReleased, p.keys...)

	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			s.ButtonsPressed = append(s.ButtonsPressed, b)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			s.ButtonsReleased = append(s.ButtonsReleased, b)
		}
	}

	mx, my := ebiten.CursorPosition()
	s.Cursor = image.Pt(mx, my)
	s.Wheel.X, s.Wheel.Y = ebiten.Wheel()
	s.Focused = ebiten.IsFocused()
	w, h := ebiten.WindowSize()
	s.Size = image.Pt(w, h)
	x, y := ebiten.WindowPosition()
	s.Position = image.Pt(x, y)
	s.Closing = ebiten.IsWindowBeingClosed()
	return s
}

// Translate emits the events that take the window from prev to cur, in a
// fixed order: keys, buttons, cursor, wheel, focus, resize, move, close.
// On the first poll there is no previous state, so only edge-triggered input
// and a close request are reported.
func Translate(prev, cur InputState, first bool, dispatch event.Func) {
	for _, k := range cur.KeysPressed {
		dispatch(event.KeyEvent{Key: k, Pressed: true})
	}
	for _, k := range cur.KeysReleased {
		dispatch(event.KeyEvent{Key: k, Pressed: false})
	}
	for _, b := range cur.ButtonsPressed {
		dispatch(event.MouseButtonEvent{Button: b, Pressed: true})
	}
	for _, b := range cur.ButtonsReleased {
		dispatch(event.MouseButtonEvent{Button: b, Pressed: false})
	}

	if !first && cur.Cursor != prev.Cursor {
		dispatch(event.MouseMovedEvent{Position: cur.Cursor})
	}
	if cur.Wheel != (event.Offset{}) {
		dispatch(event.MouseScrolledEvent{Offset: cur.Wheel})
	}
	if !first && cur.Focused != prev.Focused {
		dispatch(event.WindowFocusEvent{Focused: cur.Focused})
	}
	if !first && cur.Size != prev.Size {
		dispatch(event.WindowResizedEvent{Size: cur.Size})
	}
	if !first && cur.Position != prev.Position {
		dispatch(event.WindowMovedEvent{Position: cur.Position})
	}
	if cur.Closing && (first || !prev.Closing) {
		dispatch(event.WindowClosedEvent{})
	}
}
