package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteUser_Basic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	rec := createTestUser("[UUID:1.1]", "alice", 1700000000123)
	require.NoError(t, s.WriteUser(ctx, rec))

	var id, name string
	var timeMs int64
	err := s.db.QueryRow("SELECT id, time, name FROM users WHERE id = ?", rec.ID).Scan(&id, &timeMs, &name)
	require.NoError(t, err)

	assert.Equal(t, "[UUID:1.1]", id)
	assert.Equal(t, int64(1700000000123), timeMs)
	assert.Equal(t, "alice", name)
}

func TestWriteUser_QuotesAreBound(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	rec := createTestUser("[UUID:1.2]", "o'brien\"; DROP TABLE users; --", 1)
	require.NoError(t, s.WriteUser(ctx, rec))

	records, err := s.ReadUsers(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec, records[0])
}

func TestWriteUser_DuplicateID(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteUser(ctx, createTestUser("[UUID:1.3]", "a", 1)))

	err := s.WriteUser(ctx, createTestUser("[UUID:1.3]", "b", 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateID)

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "rejected write must not add a row")
}

func TestWriteUser_DuplicateNamesAllowed(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteUser(ctx, createTestUser("[UUID:1.4]", "sam", 1)))
	require.NoError(t, s.WriteUser(ctx, createTestUser("[UUID:1.5]", "sam", 1)))

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestWriteUser_ClosedStore(t *testing.T) {
	s := createTestStore(t)
	require.NoError(t, s.Close())

	err := s.WriteUser(context.Background(), createTestUser("[UUID:1.6]", "late", 1))
	assert.Error(t, err)
}
