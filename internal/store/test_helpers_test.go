package store

import (
	"path/filepath"
	"testing"
)

// createTestStore opens a fresh database under t.TempDir().
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestUser creates a user record with the given id and name.
func createTestUser(id, name string, timeMs int64) UserRecord {
	return UserRecord{
		ID:     id,
		TimeMs: timeMs,
		Name:   name,
	}
}
