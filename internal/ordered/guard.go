package ordered

import "sync"

// Guard returns an accessor over s that holds mu's read lock for the
// duration of each call. The owner must hold mu's write lock while
// inserting into s.
func Guard[K, V any](mu *sync.RWMutex, s *Store[K, V]) Accessor[K, V] {
	return &guarded[K, V]{mu: mu, s: s}
}

// ReadOnly returns an accessor over s without locking, for callers that
// already hold the owner's lock.
func ReadOnly[K, V any](s *Store[K, V]) Accessor[K, V] {
	return readOnly[K, V]{s: s}
}

type guarded[K, V any] struct {
	mu *sync.RWMutex
	s  *Store[K, V]
}

func (g *guarded[K, V]) At(key K) []V {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.s.At(key)
}

func (g *guarded[K, V]) After(key K, limit int) []V {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.s.After(key, limit)
}

func (g *guarded[K, V]) Range(lower, upper K) []V {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.s.Range(lower, upper)
}

func (g *guarded[K, V]) All() []V {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.s.All()
}

func (g *guarded[K, V]) First() (V, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.s.First()
}

func (g *guarded[K, V]) Last() (V, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.s.Last()
}

func (g *guarded[K, V]) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.s.Len()
}

// readOnly hides Insert behind the Accessor interface.
type readOnly[K, V any] struct {
	s *Store[K, V]
}

func (r readOnly[K, V]) At(key K) []V {
	return r.s.At(key)
}

func (r readOnly[K, V]) After(key K, limit int) []V {
	return r.s.After(key, limit)
}

func (r readOnly[K, V]) Range(lower, upper K) []V {
	return r.s.Range(lower, upper)
}

func (r readOnly[K, V]) All() []V {
	return r.s.All()
}

func (r readOnly[K, V]) First() (V, bool) {
	return r.s.First()
}

func (r readOnly[K, V]) Last() (V, bool) {
	return r.s.Last()
}

func (r readOnly[K, V]) Len() int {
	return r.s.Len()
}
