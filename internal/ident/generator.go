package ident

import (
	"errors"
	"math"
	"sync"
)

// ErrExhausted is returned once a generator has issued every id in its
// range. Generators never wrap around.
var ErrExhausted = errors.New("identifier range exhausted")

// Generator mints identifiers.
type Generator interface {
	Make() (UUID, error)
}

// LinearGenerator issues root.start, root.start+1, ... root.end in order.
//
// Thread-safety: LinearGenerator is safe for concurrent use.
type LinearGenerator struct {
	mu   sync.Mutex
	root *UUID
	next uint64
	end  uint64
}

// NewLinearGenerator creates a generator over [start, end] under root.
// A nil root issues top-level identifiers. end of 0 means math.MaxUint32.
func NewLinearGenerator(root *UUID, start, end uint32) *LinearGenerator {
	if end == 0 {
		end = math.MaxUint32
	}
	if root != nil {
		r := *root
		root = &r
	}
	return &LinearGenerator{
		root: root,
		next: uint64(start),
		end:  uint64(end),
	}
}

// Make returns the next identifier in the lineage.
// Returns ErrExhausted when the counter would pass the end of the range.
func (g *LinearGenerator) Make() (UUID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.next > g.end {
		return UUID{}, ErrExhausted
	}
	id := UUID{root: g.root, id: uint32(g.next)}
	g.next++
	return id, nil
}

// Remaining reports how many identifiers can still be issued.
func (g *LinearGenerator) Remaining() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.next > g.end {
		return 0
	}
	return g.end - g.next + 1
}
