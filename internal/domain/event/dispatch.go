package event

// Handler receives events by variant.
//
// Embed NopHandler to ignore the variants a consumer does not care about;
// the embedding makes the opt-out explicit at the type declaration.
type Handler interface {
	HandleKey(KeyEvent)
	HandleMouseButton(MouseButtonEvent)
	HandleMouseMoved(MouseMovedEvent)
	HandleMouseScrolled(MouseScrolledEvent)
	HandleWindowFocus(WindowFocusEvent)
	HandleWindowClosed(WindowClosedEvent)
	HandleWindowResized(WindowResizedEvent)
	HandleWindowMoved(WindowMovedEvent)
}

// Dispatch calls the Handler method matching e's variant.
// Returns false only for a nil event.
func Dispatch(e Event, h Handler) bool {
	switch ev := e.(type) {
	case KeyEvent:
		h.HandleKey(ev)
	case MouseButtonEvent:
		h.HandleMouseButton(ev)
	case MouseMovedEvent:
		h.HandleMouseMoved(ev)
	case MouseScrolledEvent:
		h.HandleMouseScrolled(ev)
	case WindowFocusEvent:
		h.HandleWindowFocus(ev)
	case WindowClosedEvent:
		h.HandleWindowClosed(ev)
	case WindowResizedEvent:
		h.HandleWindowResized(ev)
	case WindowMovedEvent:
		h.HandleWindowMoved(ev)
	default:
		return false
	}
	return true
}

// NopHandler ignores every event.
type NopHandler struct{}

func (NopHandler) HandleKey(KeyEvent)                     {}
func (NopHandler) HandleMouseButton(MouseButtonEvent)     {}
func (NopHandler) HandleMouseMoved(MouseMovedEvent)       {}
func (NopHandler) HandleMouseScrolled(MouseScrolledEvent) {}
func (NopHandler) HandleWindowFocus(WindowFocusEvent)     {}
func (NopHandler) HandleWindowClosed(WindowClosedEvent)   {}
func (NopHandler) HandleWindowResized(WindowResizedEvent) {}
func (NopHandler) HandleWindowMoved(WindowMovedEvent)     {}

// Func adapts a plain function to the callback shape used by backends
// when pumping events.
type Func func(Event)
