package ordered

import (
	"math"

	"github.com/google/btree"
)

// degree is the B-tree node fan-out. 32 matches the btree package's
// recommendation for in-memory trees.
const degree = 32

// Compare orders keys. It returns a negative number when a < b, zero when
// a == b, and a positive number when a > b.
type Compare[K any] func(a, b K) int

// Accessor is the read-only view of a Store handed to readers.
type Accessor[K, V any] interface {
	// At returns every value stored under key, in insertion order.
	At(key K) []V
	// After returns up to limit values whose key is strictly greater than
	// key. A limit <= 0 returns all of them.
	After(key K, limit int) []V
	// Range returns values with lower <= key < upper.
	Range(lower, upper K) []V
	// All returns every value in key order.
	All() []V
	// First returns the value with the smallest key.
	First() (V, bool)
	// Last returns the value with the largest key.
	Last() (V, bool)
	// Len returns the number of entries.
	Len() int
}

type entry[K, V any] struct {
	key   K
	seq   uint64
	value V
}

// Store is an ordered multi-map from K to V.
type Store[K, V any] struct {
	cmp  Compare[K]
	tree *btree.BTreeG[entry[K, V]]
	seq  uint64
}

// New creates an empty store ordered by cmp.
func New[K, V any](cmp Compare[K]) *Store[K, V] {
	less := func(a, b entry[K, V]) bool {
		if c := cmp(a.key, b.key); c != 0 {
			return c < 0
		}
		return a.seq < b.seq
	}
	return &Store[K, V]{
		cmp:  cmp,
		tree: btree.NewG[entry[K, V]](degree, less),
	}
}

// Insert adds value under key. Existing entries with an equal key are
// kept; the new entry sorts after them.
func (s *Store[K, V]) Insert(key K, value V) {
	s.seq++
	s.tree.ReplaceOrInsert(entry[K, V]{key: key, seq: s.seq, value: value})
}

func (s *Store[K, V]) At(key K) []V {
	var out []V
	s.tree.AscendGreaterOrEqual(entry[K, V]{key: key}, func(e entry[K, V]) bool {
		if s.cmp(e.key, key) != 0 {
			return false
		}
		out = append(out, e.value)
		return true
	})
	return out
}

func (s *Store[K, V]) After(key K, limit int) []V {
	var out []V
	// seq is never MaxUint64, so this pivot sits after every entry equal to key.
	pivot := entry[K, V]{key: key, seq: math.MaxUint64}
	s.tree.AscendGreaterOrEqual(pivot, func(e entry[K, V]) bool {
		out = append(out, e.value)
		return limit <= 0 || len(out) < limit
	})
	return out
}

func (s *Store[K, V]) Range(lower, upper K) []V {
	var out []V
	if s.cmp(lower, upper) >= 0 {
		return out
	}
	s.tree.AscendRange(entry[K, V]{key: lower}, entry[K, V]{key: upper}, func(e entry[K, V]) bool {
		out = append(out, e.value)
		return true
	})
	return out
}

func (s *Store[K, V]) All() []V {
	out := make([]V, 0, s.tree.Len())
	s.tree.Ascend(func(e entry[K, V]) bool {
		out = append(out, e.value)
		return true
	})
	return out
}

func (s *Store[K, V]) First() (V, bool) {
	e, ok := s.tree.Min()
	return e.value, ok
}

func (s *Store[K, V]) Last() (V, bool) {
	e, ok := s.tree.Max()
	return e.value, ok
}

func (s *Store[K, V]) Len() int {
	return s.tree.Len()
}
