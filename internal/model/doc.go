// Package model holds the authoritative in-memory state of the chat
// server: users, conversations and messages, each reachable through three
// orderings (by identifier, by creation time, by text).
//
// Every entity kind has one sync.RWMutex. An add takes the write lock and
// inserts into all three orderings before releasing it, so readers never
// observe an entity in one ordering but not another. Readers of one kind
// never wait on writers of another.
//
// Users are durable. AddUser writes the user to a UserLog before the user
// becomes visible; if the write fails nothing changes in memory and the
// error is returned. At construction the model replays the log through
// RestoreUser, which indexes without writing again. Conversations and
// messages live in memory only.
//
// Nothing in this package exits the process. Failures come back as
// *Error values; use the IsXxx helpers to classify them.
package model
