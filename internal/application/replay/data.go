// Package replay records the events a session delivers to its scenes and
// plays them back frame by frame.
package replay

import (
	"fmt"
	"image"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/lumen/internal/domain/event"
)

// Version is written into every recording.
const Version = "1.0"

// Record is one event delivered on frame F
type Record struct {
	F int64      `json:"f"`           // Frame number
	K event.Kind `json:"k"`           // Event kind
	C int        `json:"c,omitempty"` // Key or mouse button code
	P bool       `json:"p,omitempty"` // Pressed or focused
	X float64    `json:"x,omitempty"` // Position, size or scroll X
	Y float64    `json:"y,omitempty"` // Position, size or scroll Y
}

// Data contains all data needed to replay a session
type Data struct {
	Version   string    `json:"version"`
	Session   uuid.UUID `json:"session"`
	StartTime string    `json:"startTime"`
	Frames    int64     `json:"frames"` // frames rendered while recording
	Events    []Record  `json:"events"`
}

// Encode converts e into a Record for frame f.
func Encode(f int64, e event.Event) (Record, error) {
	enc := encoder{rec: Record{F: f}}
	if !event.Dispatch(e, &enc) {
		return Record{}, fmt.Errorf("replay: cannot encode %v", e)
	}
	return enc.rec, nil
}

// Event rebuilds the event described by r.
func (r Record) Event() (event.Event, error) {
	switch r.K {
	case event.KindKey:
		return event.KeyEvent{Key: ebiten.Key(r.C), Pressed: r.P}, nil
	case event.KindMouseButton:
		return event.MouseButtonEvent{Button: ebiten.MouseButton(r.C), Pressed: r.P}, nil
	case event.KindMouseMoved:
		return event.MouseMovedEvent{Position: r.point()}, nil
	case event.KindMouseScrolled:
		return event.MouseScrolledEvent{Offset: event.Offset{X: r.X, Y: r.Y}}, nil
	case event.KindWindowFocus:
		return event.WindowFocusEvent{Focused: r.P}, nil
	case event.KindWindowClosed:
		return event.WindowClosedEvent{}, nil
	case event.KindWindowResized:
		return event.WindowResizedEvent{Size: r.point()}, nil
	case event.KindWindowMoved:
		return event.WindowMovedEvent{Position: r.point()}, nil
	default:
		return nil, fmt.Errorf("replay: unknown event kind %d on frame %d", r.K, r.F)
	}
}

func (r Record) point() image.Point {
	return image.Pt(int(r.X), int(r.Y))
}

// encoder fills a Record from whichever variant it is handed.
type encoder struct {
	rec Record
}

func (e *encoder) setPoint(k event.Kind, p image.Point) {
	e.rec.K = k
	e.rec.X, e.rec.Y = float64(p.X), float64(p.Y)
}

func (e *encoder) HandleKey(ev event.KeyEvent) {
	e.rec.K, e.rec.C, e.rec.P = event.KindKey, int(ev.Key), ev.Pressed
}

func (e *encoder) HandleMouseButton(ev event.MouseButtonEvent) {
	e.rec.K, e.rec.C, e.rec.P = event.KindMouseButton, int(ev.Button), ev.Pressed
}

func (e *encoder) HandleMouseMoved(ev event.MouseMovedEvent) {
	e.setPoint(event.KindMouseMoved, ev.Position)
}

func (e *encoder) HandleMouseScrolled(ev event.MouseScrolledEvent) {
	e.rec.K, e.rec.X, e.rec.Y = event.KindMouseScrolled, ev.Offset.X, ev.Offset.Y
}

func (e *encoder) HandleWindowFocus(ev event.WindowFocusEvent) {
	e.rec.K, e.rec.P = event.KindWindowFocus, ev.Focused
}

func (e *encoder) HandleWindowClosed(event.WindowClosedEvent) {
	e.rec.K = event.KindWindowClosed
}

func (e *encoder) HandleWindowResized(ev event.WindowResizedEvent) {
	e.setPoint(event.KindWindowResized, ev.Size)
}

func (e *encoder) HandleWindowMoved(ev event.WindowMovedEvent) {
	e.setPoint(event.KindWindowMoved, ev.Position)
}
