// Package params holds the live flower parameters shared between the frame
// loop and its writers (keyboard handlers, the preset watcher), plus YAML
// preset files.
package params

import (
	"sync"
	"sync/atomic"

	"github.com/Faultbox/bloom/internal/flower"
)

// Store publishes immutable ShapeParameters snapshots. Readers never block;
// writers replace the whole value, so a frame always sees one consistent set.
type Store struct {
	mu      sync.Mutex // serializes Update read-modify-write
	current atomic.Pointer[flower.ShapeParameters]
	version atomic.Uint64
}

// NewStore creates a store holding initial.
func NewStore(initial flower.ShapeParameters) *Store {
	s := &Store{}
	s.current.Store(&initial)
	return s
}

// Snapshot returns the current parameters.
func (s *Store) Snapshot() flower.ShapeParameters {
	return *s.current.Load()
}

// Set replaces the parameters.
func (s *Store) Set(p flower.ShapeParameters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish(p)
}

// Update applies fn to a copy of the current parameters and publishes the
// result.
func (s *Store) Update(fn func(*flower.ShapeParameters)) flower.ShapeParameters {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := *s.current.Load()
	fn(&p)
	s.publish(p)
	return p
}

// Version increases by one on every Set or Update.
func (s *Store) Version() uint64 {
	return s.version.Load()
}

func (s *Store) publish(p flower.ShapeParameters) {
	s.current.Store(&p)
	s.version.Add(1)
}
