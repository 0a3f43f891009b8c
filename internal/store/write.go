package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrDuplicateID is returned by WriteUser when a row with the same id
// already exists.
var ErrDuplicateID = errors.New("duplicate user id")

// ErrMalformedRow marks a stored row whose columns could not be decoded.
var ErrMalformedRow = errors.New("malformed user row")

// UserRecord is one row of the users table.
type UserRecord struct {
	ID     string // canonical identifier text
	TimeMs int64  // creation time, Unix milliseconds
	Name   string

	// Err is set by ReadUsers when the row could not be decoded. It wraps
	// ErrMalformedRow. WriteUser ignores it.
	Err error
}

// WriteUser appends one row. The row is committed before WriteUser
// returns nil.
func (s *Store) WriteUser(ctx context.Context, rec UserRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, time, name)
		VALUES (?, ?, ?)
	`,
		rec.ID,
		rec.TimeMs,
		rec.Name,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("write user %s: %w", rec.ID, ErrDuplicateID)
		}
		return fmt.Errorf("write user %s: %w", rec.ID, err)
	}
	return nil
}
