// Package ident provides lineage-scoped identifiers for chat entities.
//
// A UUID is a numeric id plus an optional root UUID. The chain of roots
// forms the lineage path of the identifier:
//
//	[UUID:7.42]   id 42 issued under root 7
//	[UUID:1]      id 1 with no root
//
// Identifiers are values. They are compared with Compare, which orders
// by id first and breaks ties by comparing roots, with a missing root
// ordered before any present root.
//
// New identifiers come from a LinearGenerator, which walks a bounded
// counter inside one lineage and reports ErrExhausted instead of wrapping.
package ident
