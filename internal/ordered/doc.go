// Package ordered provides a generic ordered multi-map used for every
// in-memory index of the chat model.
//
// A Store keeps key/value entries sorted by a comparator fixed at
// construction. Duplicate keys are allowed: entries with equal keys are
// kept in insertion order. The backing structure is a B-tree
// (github.com/google/btree), so inserts and point lookups are O(log n).
//
// Store is not safe for concurrent use. Owners that share a store between
// goroutines hand out Guard accessors, which take a read lock on a
// caller-owned sync.RWMutex for every read, and take the write lock
// themselves around Insert.
package ordered
