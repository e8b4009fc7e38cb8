// Package event defines the input and window events routed into scenes.
//
// Event is a closed set: only the variants declared in this package satisfy
// it. Consumers either type-switch on the concrete value or implement
// Handler and call Dispatch, which has one method per variant so a missing
// case is a compile error rather than a silently dropped event.
package event

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Kind is the stable tag of an event variant.
type Kind uint8

const (
	KindKey Kind = iota
	KindMouseButton
	KindMouseMoved
	KindMouseScrolled
	KindWindowFocus
	KindWindowClosed
	KindWindowResized
	KindWindowMoved
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindKey:
		return "Key"
	case KindMouseButton:
		return "MouseButton"
	case KindMouseMoved:
		return "MouseMoved"
	case KindMouseScrolled:
		return "MouseScrolled"
	case KindWindowFocus:
		return "WindowFocus"
	case KindWindowClosed:
		return "WindowClosed"
	case KindWindowResized:
		return "WindowResized"
	case KindWindowMoved:
		return "WindowMoved"
	default:
		return "Unknown"
	}
}

// Event is one input or window occurrence.
type Event interface {
	Kind() Kind
	event()
}

// KeyEvent reports a key press or release. Repeats are not reported.
type KeyEvent struct {
	Key     ebiten.Key
	Pressed bool
}

// MouseButtonEvent reports a mouse button press or release.
type MouseButtonEvent struct {
	Button  ebiten.MouseButton
	Pressed bool
}

// MouseMovedEvent reports the new cursor position in window coordinates.
type MouseMovedEvent struct {
	Position image.Point
}

// Offset is a scroll amount along each axis.
type Offset struct {
	X, Y float64
}

// MouseScrolledEvent reports wheel or trackpad scrolling.
type MouseScrolledEvent struct {
	Offset Offset
}

// WindowFocusEvent reports the window gaining or losing focus.
type WindowFocusEvent struct {
	Focused bool
}

// WindowClosedEvent reports a close request from the window system.
type WindowClosedEvent struct{}

// WindowResizedEvent reports the new window size.
type WindowResizedEvent struct {
	Size image.Point
}

// WindowMovedEvent reports the new window position.
type WindowMovedEvent struct {
	Position image.Point
}

func (KeyEvent) Kind() Kind           { return KindKey }
func (MouseButtonEvent) Kind() Kind   { return KindMouseButton }
func (MouseMovedEvent) Kind() Kind    { return KindMouseMoved }
func (MouseScrolledEvent) Kind() Kind { return KindMouseScrolled }
func (WindowFocusEvent) Kind() Kind   { return KindWindowFocus }
func (WindowClosedEvent) Kind() Kind  { return KindWindowClosed }
func (WindowResizedEvent) Kind() Kind { return KindWindowResized }
func (WindowMovedEvent) Kind() Kind   { return KindWindowMoved }

func (KeyEvent) event()           {}
func (MouseButtonEvent) event()   {}
func (MouseMovedEvent) event()    {}
func (MouseScrolledEvent) event() {}
func (WindowFocusEvent) event()   {}
func (WindowClosedEvent) event()  {}
func (WindowResizedEvent) event() {}
func (WindowMovedEvent) event()   {}
