package scene

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/lumen/internal/domain/errs"
	"github.com/younwookim/lumen/internal/domain/event"
	"github.com/younwookim/lumen/internal/infrastructure/logging"
)

// Manager owns registered scenes and tracks which are active.
//
// Two usage styles share one active list:
//   - single current scene: Select closes whatever is active and begins
//     the named scene, so events route to it alone;
//   - multiple active scenes: Activate and Deactivate add and remove
//     scenes independently; every active scene is updated, drawn and sent
//     every event, in activation order.
//
// OnEnter and OnExit run exactly once per transition. Hooks are called
// without the Manager's lock held, so a scene may call back into the
// Manager (e.g. Select from OnEvent). A scene deactivated part way through a
// traversal receives nothing further from that traversal.
//
// Thread-safety: all methods are safe for concurrent use.
type Manager struct {
	mu     sync.Mutex
	scenes map[string]Scene
	order  []string // registration order
	active []string // activation order
	closed bool
	logger *slog.Logger
}

// NewManager creates an empty manager. A nil logger discards output.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Manager{
		scenes: make(map[string]Scene),
		logger: logger,
	}
}

// Register stores s under name. The Manager owns s from now on.
func (m *Manager) Register(name string, s Scene) error {
	const op = "scene.Register"
	if name == "" {
		return errs.InvalidArgument(op, name, "empty name")
	}
	if s == nil {
		return errs.InvalidArgument(op, name, "nil scene")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return errs.Closed(op, name)
	}
	if _, ok := m.scenes[name]; ok {
		return errs.DuplicateName(op, name)
	}
	m.scenes[name] = s
	m.order = append(m.order, name)
	m.logger.Debug("scene registered", "scene", name)
	return nil
}

// Create builds a scene with factory and registers it under name.
// The factory is not called when name is already taken.
func (m *Manager) Create(name string, factory Factory) (Scene, error) {
	const op = "scene.Create"
	if factory == nil {
		return nil, errs.InvalidArgument(op, name, "nil factory")
	}
	m.mu.Lock()
	_, taken := m.scenes[name]
	m.mu.Unlock()
	if taken {
		return nil, errs.DuplicateName(op, name)
	}

	s, err := factory()
	if err != nil {
		m.logger.Error("scene factory failed", "scene", name, "error", err)
		return nil, err
	}
	if err := m.Register(name, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the scene registered under name.
func (m *Manager) Get(name string) (Scene, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.scenes[name]
	if !ok {
		return nil, errs.NotFound("scene.Get", name)
	}
	return s, nil
}

// Names returns registered scene names in registration order.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.order)
}

// Len returns the number of registered scenes.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.scenes)
}

// Active returns the active scene names in activation order.
func (m *Manager) Active() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.active)
}

// ActiveCount returns the number of active scenes.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// IsActive reports whether name is active.
func (m *Manager) IsActive(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Contains(m.active, name)
}

// Current returns the most recently activated scene, if any.
func (m *Manager) Current() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.active) == 0 {
		return "", false
	}
	return m.active[len(m.active)-1], true
}

// Select makes name the only active scene. Active scenes receive OnExit in
// reverse activation order, then name receives OnEnter. Selecting the scene
// that is already current exits and re-enters it. An unknown name returns
// NotFound and changes nothing.
func (m *Manager) Select(name string) error {
	m.mu.Lock()
	next, ok := m.scenes[name]
	if !ok {
		m.mu.Unlock()
		return errs.NotFound("scene.Select", name)
	}
	leaving := m.active
	m.active = []string{name}
	exiting := make([]Scene, 0, len(leaving))
	for i := len(leaving) - 1; i >= 0; i-- {
		exiting = append(exiting, m.scenes[leaving[i]])
	}
	m.mu.Unlock()

	for _, s := range exiting {
		s.OnExit()
	}
	next.OnEnter()
	m.logger.Info("scene selected", "scene", name, "closed", len(exiting))
	return nil
}

// Activate appends name to the active scenes and calls its OnEnter.
// Activating an already active scene logs a warning and does nothing.
func (m *Manager) Activate(name string) error {
	m.mu.Lock()
	s, ok := m.scenes[name]
	if !ok {
		m.mu.Unlock()
		return errs.NotFound("scene.Activate", name)
	}
	if slices.Contains(m.active, name) {
		m.mu.Unlock()
		m.logger.Warn("scene already active", "scene", name)
		return nil
	}
	m.active = append(m.active, name)
	m.mu.Unlock()

	s.OnEnter()
	m.logger.Debug("scene activated", "scene", name)
	return nil
}

// Deactivate removes name from the active scenes and calls its OnExit.
// Deactivating a scene that is not active logs a warning and does nothing.
func (m *Manager) Deactivate(name string) error {
	m.mu.Lock()
	s, ok := m.scenes[name]
	if !ok {
		m.mu.Unlock()
		return errs.NotFound("scene.Deactivate", name)
	}
	idx := slices.Index(m.active, name)
	if idx < 0 {
		m.mu.Unlock()
		m.logger.Warn("scene not active", "scene", name)
		return nil
	}
	m.active = slices.Delete(slices.Clone(m.active), idx, idx+1)
	m.mu.Unlock()

	s.OnExit()
	m.logger.Debug("scene deactivated", "scene", name)
	return nil
}

// Remove forgets name, then calls OnExit if it was active and destroys it.
// The hooks run after name is gone, so they cannot bring it back.
func (m *Manager) Remove(name string) error {
	m.mu.Lock()
	s, ok := m.scenes[name]
	if !ok {
		m.mu.Unlock()
		return errs.NotFound("scene.Remove", name)
	}
	idx := slices.Index(m.active, name)
	if idx >= 0 {
		m.active = slices.Delete(slices.Clone(m.active), idx, idx+1)
	}
	delete(m.scenes, name)
	m.order = slices.DeleteFunc(m.order, func(n string) bool { return n == name })
	m.mu.Unlock()

	if idx >= 0 {
		s.OnExit()
	}
	destroy(s)
	m.logger.Debug("scene removed", "scene", name, "was_active", idx >= 0)
	return nil
}

// Update calls Update on every active scene in activation order and stops
// at the first error.
func (m *Manager) Update(dt float64) error {
	for _, e := range m.snapshot() {
		if !m.IsActive(e.name) {
			continue
		}
		if err := e.scene.Update(dt); err != nil {
			return err
		}
	}
	return nil
}

// Draw calls Draw on every active scene in activation order.
func (m *Manager) Draw(screen *ebiten.Image) {
	for _, e := range m.snapshot() {
		if !m.IsActive(e.name) {
			continue
		}
		e.scene.Draw(screen)
	}
}

// Dispatch delivers ev to every active scene in activation order.
func (m *Manager) Dispatch(ev event.Event) {
	for _, e := range m.snapshot() {
		if !m.IsActive(e.name) {
			continue
		}
		e.scene.OnEvent(ev)
	}
}

// Close exits every active scene in reverse activation order, then
// destroys every registered scene once. Later calls do nothing.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	exiting := make([]Scene, 0, len(m.active))
	for i := len(m.active) - 1; i >= 0; i-- {
		exiting = append(exiting, m.scenes[m.active[i]])
	}
	owned := make([]Scene, 0, len(m.order))
	for _, name := range m.order {
		owned = append(owned, m.scenes[name])
	}
	m.active = nil
	m.order = nil
	m.scenes = make(map[string]Scene)
	m.mu.Unlock()

	for _, s := range exiting {
		s.OnExit()
	}
	for _, s := range owned {
		destroy(s)
	}
	m.logger.Info("scenes closed", "exited", len(exiting), "destroyed", len(owned))
}

type entry struct {
	name  string
	scene Scene
}

func (m *Manager) snapshot() []entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]entry, 0, len(m.active))
	for _, name := range m.active {
		if s, ok := m.scenes[name]; ok {
			out = append(out, entry{name: name, scene: s})
		}
	}
	return out
}

func destroy(s Scene) {
	if d, ok := s.(Destroyer); ok {
		d.Destroy()
	}
}
