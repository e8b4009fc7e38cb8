// Package resource provides the Resource Registry: the single owner of
// every named GPU and audio object the application creates.
//
// Each resource kind has its own namespace. A name is assigned exactly once;
// assigning it again is rejected with a DuplicateName error and leaves the
// existing entry in place. Callers receive non-owning pointers that stay
// valid until Close, which releases every entry exactly once. Close must run
// before the backend shuts down because releasing calls into the backend.
package resource

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/younwookim/lumen/internal/domain/errs"
	"github.com/younwookim/lumen/internal/infrastructure/logging"
)

// Kind identifies a resource namespace.
type Kind int

const (
	KindShader Kind = iota
	KindVertexBuffer
	KindTexture
	KindFont
	KindAudioStream
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindShader:
		return "Shader"
	case KindVertexBuffer:
		return "VertexBuffer"
	case KindTexture:
		return "Texture"
	case KindFont:
		return "Font"
	case KindAudioStream:
		return "AudioStream"
	default:
		return "Unknown"
	}
}

// releaseOrder is the teardown order across kinds. Streams and fonts go
// first since nothing else references them; shaders last.
var releaseOrder = []Kind{KindAudioStream, KindFont, KindTexture, KindVertexBuffer, KindShader}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. Defaults to a nop logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithReleaseObserver registers fn to be called after each entry is
// released during Close.
func WithReleaseObserver(fn func(kind Kind, name string)) Option {
	return func(r *Registry) {
		r.onRelease = fn
	}
}

// Registry maps (kind, name) to an owned resource.
type Registry struct {
	mu        sync.RWMutex
	closed    bool
	logger    *slog.Logger
	onRelease func(Kind, string)

	shaders  *store[*ebiten.Shader]
	vertices *store[*VertexBuffer]
	textures *store[*ebiten.Image]
	fonts    *store[*text.GoTextFaceSource]
	streams  *store[*AudioStream]
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		logger:   logging.Nop(),
		shaders:  newStore(KindShader, releaseShader),
		vertices: newStore(KindVertexBuffer, func(*VertexBuffer) error { return nil }),
		textures: newStore(KindTexture, releaseTexture),
		fonts:    newStore(KindFont, func(*text.GoTextFaceSource) error { return nil }),
		streams:  newStore(KindAudioStream, releaseAudioStream),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Names returns the names assigned under kind, in assignment order.
func (r *Registry) Names(kind Kind) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := r.storeOf(kind)
	if s == nil {
		return nil
	}
	return s.names()
}

// Len returns the number of entries assigned under kind.
func (r *Registry) Len(kind Kind) int {
	return len(r.Names(kind))
}

// Has reports whether name is assigned under kind.
func (r *Registry) Has(kind Kind, name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := r.storeOf(kind)
	return s != nil && s.has(name)
}

// Close releases every entry exactly once. Release errors are logged and
// joined; the registry is closed regardless. Calling Close again is a no-op.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errList []error
	for _, kind := range releaseOrder {
		s := r.storeOf(kind)
		s.releaseAll(func(name string, err error) {
			if err != nil {
				r.logger.Warn("resource release failed", "kind", kind, "name", name, "error", err)
				errList = append(errList, fmt.Errorf("release %s %q: %w", kind, name, err))
			} else {
				r.logger.Debug("resource released", "kind", kind, "name", name)
			}
			if r.onRelease != nil {
				r.onRelease(kind, name)
			}
		})
	}
	return errors.Join(errList...)
}

// storeOf returns the type-erased view of kind's store.
func (r *Registry) storeOf(kind Kind) namedStore {
	switch kind {
	case KindShader:
		return r.shaders
	case KindVertexBuffer:
		return r.vertices
	case KindTexture:
		return r.textures
	case KindFont:
		return r.fonts
	case KindAudioStream:
		return r.streams
	default:
		return nil
	}
}

// assign inserts the value built by build under name in s.
// build runs without r.mu held, so lookups proceed while a file is read or
// decoded. If name was taken or the registry closed meanwhile, the built
// value is released and the call fails as if it had lost from the start.
// The caller must not hold r.mu.
func assign[T any](r *Registry, s *store[T], op, name string, build func() (T, error)) (T, error) {
	var zero T

	if name == "" {
		return zero, errs.InvalidArgument(op, name, "empty name")
	}
	r.mu.RLock()
	err := r.claimable(s.kind, s.has(name), op, name)
	r.mu.RUnlock()
	if err != nil {
		return zero, err
	}

	v, err := build()
	if err != nil {
		r.logger.Error("resource construction failed", "kind", s.kind, "name", name, "error", err)
		if errs.CodeOf(err) != "" {
			return zero, err
		}
		return zero, errs.Wrap(errs.CodeInvalidArgument, op, name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.claimable(s.kind, s.has(name), op, name); err != nil {
		if rerr := s.release(v); rerr != nil {
			r.logger.Warn("resource release failed", "kind", s.kind, "name", name, "error", rerr)
		}
		return zero, err
	}
	s.put(name, v)
	r.logger.Debug("resource assigned", "kind", s.kind, "name", name)
	return v, nil
}

// claimable reports why name cannot be assigned, if it cannot.
// The caller holds r.mu.
func (r *Registry) claimable(kind Kind, taken bool, op, name string) error {
	if r.closed {
		return errs.Closed(op, name)
	}
	if taken {
		r.logger.Warn("resource name already assigned", "kind", kind, "name", name)
		return errs.DuplicateName(op, name)
	}
	return nil
}

// lookup returns the entry under name in s.
func lookup[T any](r *Registry, s *store[T], op, name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := s.get(name)
	if !ok {
		var zero T
		return zero, errs.NotFound(op, name)
	}
	return v, nil
}
