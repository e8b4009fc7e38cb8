package resource

// namedStore is the kind-independent view of a store used by Registry
// for inspection and teardown.
type namedStore interface {
	names() []string
	has(name string) bool
	releaseAll(report func(name string, err error))
}

// store holds the entries of one kind in assignment order.
// Not safe for concurrent use; Registry serializes access.
type store[T any] struct {
	kind    Kind
	items   map[string]T
	order   []string
	release func(T) error
}

func newStore[T any](kind Kind, release func(T) error) *store[T] {
	return &store[T]{
		kind:    kind,
		items:   make(map[string]T),
		release: release,
	}
}

func (s *store[T]) has(name string) bool {
	_, ok := s.items[name]
	return ok
}

func (s *store[T]) get(name string) (T, bool) {
	v, ok := s.items[name]
	return v, ok
}

func (s *store[T]) put(name string, v T) {
	s.items[name] = v
	s.order = append(s.order, name)
}

func (s *store[T]) names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// releaseAll releases entries in reverse assignment order and empties the
// store, so a second call releases nothing.
func (s *store[T]) releaseAll(report func(name string, err error)) {
	for i := len(s.order) - 1; i >= 0; i-- {
		name := s.order[i]
		err := s.release(s.items[name])
		delete(s.items, name)
		report(name, err)
	}
	s.order = nil
}
