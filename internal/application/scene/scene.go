// Package scene defines the Scene interface and the lifecycle Manager.
//
// Each application screen or mode (title, menu, level, HUD overlay, etc.)
// implements Scene. The Manager owns registered scenes and decides which of
// them receive update, draw and event calls.
package scene

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/lumen/internal/domain/event"
)

// Scene represents an application screen (title, menu, level, overlay, etc.)
//
// The frame scheduler delegates Update and Draw calls to every active scene,
// in activation order. Transitions go through the Manager.
type Scene interface {
	// OnEnter is called when the scene becomes active.
	// Use this for initialization that should happen each time the scene is entered.
	OnEnter()

	// OnExit is called when the scene stops being active.
	// Use this for cleanup or saving state. Resources stay owned by the registry.
	OnExit()

	// Update advances the scene state.
	// dt is the time since the previous tick, in seconds.
	// Returns an error to terminate the application.
	Update(dt float64) error

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEvent receives each input or window event while the scene is active.
	OnEvent(e event.Event)
}

// Destroyer is implemented by scenes that hold state needing explicit
// teardown. Destroy is called once, when the scene is removed or the
// Manager closes.
type Destroyer interface {
	Destroy()
}

// Factory constructs a scene. Used by Manager.Create.
type Factory func() (Scene, error)

// Base implements every Scene hook as a no-op. Embed it and override the
// hooks a scene needs.
type Base struct{}

func (Base) OnEnter()                  {}
func (Base) OnExit()                   {}
func (Base) Update(dt float64) error   { return nil }
func (Base) Draw(screen *ebiten.Image) {}
func (Base) OnEvent(e event.Event)     {}
