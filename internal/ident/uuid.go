package ident

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	canonicalPrefix = "[UUID:"
	canonicalSuffix = "]"
)

// UUID identifies an entity within a lineage.
// The zero value is the id 0 with no root.
//
// A UUID is immutable: the root chain is private and never handed out,
// so copies can be shared freely.
type UUID struct {
	root *UUID
	id   uint32
}

// New returns the identifier id issued under root.
// A nil root produces a top-level identifier.
func New(root *UUID, id uint32) UUID {
	if root != nil {
		r := *root
		root = &r
	}
	return UUID{root: root, id: id}
}

// ID returns the numeric id of u within its lineage.
func (u UUID) ID() uint32 {
	return u.id
}

// Root returns a copy of the parent identifier. ok is false for a
// top-level identifier.
func (u UUID) Root() (root UUID, ok bool) {
	if u.root == nil {
		return UUID{}, false
	}
	return *u.root, true
}

// IsZero reports whether u is the zero value. Generators never issue it.
func (u UUID) IsZero() bool {
	return u.id == 0 && u.root == nil
}

// Path returns the lineage from the outermost root down to u.
func (u UUID) Path() []uint32 {
	var path []uint32
	for cur := &u; cur != nil; cur = cur.root {
		path = append(path, cur.id)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// String renders the canonical text form, e.g. "[UUID:7.42]".
// This is the form written to durable storage.
func (u UUID) String() string {
	var b strings.Builder
	b.WriteString(canonicalPrefix)
	for i, id := range u.Path() {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	b.WriteString(canonicalSuffix)
	return b.String()
}

// Equal reports whether a and b have the same id and the same lineage.
func Equal(a, b UUID) bool {
	return Compare(a, b) == 0
}

// Compare orders identifiers by id, then by root. A nil root sorts
// before any non-nil root.
func Compare(a, b UUID) int {
	switch {
	case a.id < b.id:
		return -1
	case a.id > b.id:
		return 1
	}
	return compareRoot(a.root, b.root)
}

func compareRoot(a, b *UUID) int {
	switch {
	case a == b:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return Compare(*a, *b)
}

// ParseError reports text that is not a valid identifier.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse uuid %q: %s", e.Input, e.Reason)
}

// Parse reads an identifier in canonical form ("[UUID:1.2]") or as a
// bare dotted path ("1.2").
func Parse(s string) (UUID, error) {
	body := strings.TrimSpace(s)
	if strings.HasPrefix(body, canonicalPrefix) {
		if !strings.HasSuffix(body, canonicalSuffix) {
			return UUID{}, &ParseError{Input: s, Reason: "missing closing bracket"}
		}
		body = strings.TrimSuffix(strings.TrimPrefix(body, canonicalPrefix), canonicalSuffix)
	}
	if body == "" {
		return UUID{}, &ParseError{Input: s, Reason: "empty path"}
	}

	var cur *UUID
	for _, part := range strings.Split(body, ".") {
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return UUID{}, &ParseError{Input: s, Reason: fmt.Sprintf("bad segment %q", part)}
		}
		cur = &UUID{root: cur, id: uint32(id)}
	}
	return *cur, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// constants.
func MustParse(s string) UUID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}
