package model

import (
	"sync"
	"time"

	"github.com/roach88/chatstore/internal/ident"
	"github.com/roach88/chatstore/internal/ordered"
)

// Indices is a read-only view of the three orderings of one entity kind.
type Indices[V any] struct {
	ByID   ordered.Accessor[ident.UUID, V]
	ByTime ordered.Accessor[time.Time, V]
	ByText ordered.Accessor[string, V]
}

// keys extracts the index keys of an entity.
type keys[V any] func(v V) (id ident.UUID, created time.Time, text string)

// index keeps three orderings of one entity kind in lockstep.
type index[V any] struct {
	mu     sync.RWMutex
	byID   *ordered.Store[ident.UUID, V]
	byTime *ordered.Store[time.Time, V]
	byText *ordered.Store[string, V]
	keys   keys[V]
}

func newIndex[V any](k keys[V]) *index[V] {
	return &index[V]{
		byID:   ordered.New[ident.UUID, V](compareID),
		byTime: ordered.New[time.Time, V](compareTime),
		byText: ordered.New[string, V](compareText),
		keys:   k,
	}
}

// insertLocked adds v to every ordering. Caller holds mu for writing.
// The text ordering is keyed by the folded text.
func (ix *index[V]) insertLocked(v V) {
	id, created, text := ix.keys(v)
	ix.byID.Insert(id, v)
	ix.byTime.Insert(created, v)
	ix.byText.Insert(foldText(text), v)
}

// containsLocked reports whether id is indexed. Caller holds mu.
func (ix *index[V]) containsLocked(id ident.UUID) bool {
	return len(ix.byID.At(id)) > 0
}

// guarded returns accessors that lock per call.
func (ix *index[V]) guarded() Indices[V] {
	return Indices[V]{
		ByID:   ordered.Guard(&ix.mu, ix.byID),
		ByTime: ordered.Guard(&ix.mu, ix.byTime),
		ByText: foldedKeys[V]{ordered.Guard(&ix.mu, ix.byText)},
	}
}

// view runs fn with all three orderings under one read lock.
func (ix *index[V]) view(fn func(Indices[V])) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	fn(Indices[V]{
		ByID:   ordered.ReadOnly(ix.byID),
		ByTime: ordered.ReadOnly(ix.byTime),
		ByText: foldedKeys[V]{ordered.ReadOnly(ix.byText)},
	})
}

func (ix *index[V]) len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.byID.Len()
}

// foldedKeys folds lookup keys so callers query the text ordering with
// the display text they have.
type foldedKeys[V any] struct {
	ordered.Accessor[string, V]
}

func (f foldedKeys[V]) At(key string) []V {
	return f.Accessor.At(foldText(key))
}

func (f foldedKeys[V]) After(key string, limit int) []V {
	return f.Accessor.After(foldText(key), limit)
}

func (f foldedKeys[V]) Range(lower, upper string) []V {
	return f.Accessor.Range(foldText(lower), foldText(upper))
}
