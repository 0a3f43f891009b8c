// Package store provides SQLite-backed durable storage for chat users.
//
// The store holds one append-only table:
//
//	users(id TEXT PRIMARY KEY, time BIGINT, name TEXT)
//
// id is the canonical text of the user's identifier ("[UUID:1.7]"), time
// is the creation instant in Unix milliseconds. Rows are never updated
// or deleted. On startup the owning model reads every row back and
// rebuilds its in-memory indices; rows come back in table order, with no
// ORDER BY, since the indices sort them again.
//
// # Durability
//
// Every WriteUser is a single parameterized INSERT in autocommit mode, so
// a row is either fully written or not written at all. The database is
// configured with:
//
//   - WAL mode: readers do not block the writer
//   - synchronous=FULL: a committed row survives power loss
//   - busy_timeout=5000: wait for locks up to 5 seconds
//
// # Schema versioning
//
// PRAGMA user_version records the schema version. A database written by a
// newer build is refused with ErrSchemaVersion rather than guessed at.
package store
