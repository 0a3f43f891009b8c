package model

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/roach88/chatstore/internal/chat"
	"github.com/roach88/chatstore/internal/ident"
	"github.com/roach88/chatstore/internal/store"
)

// openTestStore opens a SQLite store under t.TempDir() and returns it
// with its path so tests can reopen it.
func openTestStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.db")
	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

// createTestModel builds a model backed by a fresh store.
func createTestModel(t *testing.T, opts ...Option) (*Model, *store.Store) {
	t.Helper()
	s, _ := openTestStore(t)
	m, err := New(context.Background(), s, opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return m, s
}

func testUser(id uint32, name string, ms int64) chat.User {
	root := ident.New(nil, 1)
	return chat.User{
		ID:       ident.New(&root, id),
		Name:     name,
		Creation: time.UnixMilli(ms),
	}
}

func userNames(users []chat.User) []string {
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Name
	}
	return names
}

func userIDs(users []chat.User) []string {
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID.String()
	}
	return ids
}

// memLog is an in-memory UserLog whose writes can be made to fail.
type memLog struct {
	mu       sync.Mutex
	records  []store.UserRecord
	writeErr error
	readErr  error
	writes   int
}

func (l *memLog) WriteUser(_ context.Context, rec store.UserRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writes++
	if l.writeErr != nil {
		return l.writeErr
	}
	l.records = append(l.records, rec)
	return nil
}

func (l *memLog) ReadUsers(_ context.Context) ([]store.UserRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.readErr != nil {
		return nil, l.readErr
	}
	return append([]store.UserRecord(nil), l.records...), nil
}
