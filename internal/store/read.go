package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ReadUsers returns every row of the users table in storage order.
//
// A row whose columns cannot be decoded is still returned, with Err set,
// so one bad row never hides the others. Only query and iteration
// failures are returned as errors.
//
// Returns an empty slice (not nil) when the table is empty.
func (s *Store) ReadUsers(ctx context.Context) ([]UserRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, time, name FROM users`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	records := []UserRecord{}
	for rows.Next() {
		var (
			id, name sql.NullString
			rawTime  any
		)
		if err := rows.Scan(&id, &rawTime, &name); err != nil {
			records = append(records, UserRecord{
				Err: fmt.Errorf("%w: scan: %v", ErrMalformedRow, err),
			})
			continue
		}
		records = append(records, decodeUser(id, rawTime, name))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return records, nil
}

func decodeUser(id sql.NullString, rawTime any, name sql.NullString) UserRecord {
	rec := UserRecord{ID: id.String, Name: name.String}
	switch {
	case !id.Valid:
		rec.Err = fmt.Errorf("%w: id is NULL", ErrMalformedRow)
	case !name.Valid:
		rec.Err = fmt.Errorf("%w: name is NULL", ErrMalformedRow)
	default:
		ms, err := decodeTime(rawTime)
		if err != nil {
			rec.Err = fmt.Errorf("%w: time: %v", ErrMalformedRow, err)
		}
		rec.TimeMs = ms
	}
	return rec
}

// decodeTime accepts the storage classes SQLite may hand back for the
// time column and requires a whole number of milliseconds.
func decodeTime(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case float64:
		if t != math.Trunc(t) || t < math.MinInt64 || t >= math.MaxInt64 {
			return 0, fmt.Errorf("%v is not a whole number", t)
		}
		return int64(t), nil
	case string:
		return parseTimeText(t)
	case []byte:
		return parseTimeText(string(t))
	case nil:
		return 0, fmt.Errorf("value is NULL")
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func parseTimeText(s string) (int64, error) {
	ms, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return ms, nil
}

// CountUsers returns the number of rows in the users table.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
