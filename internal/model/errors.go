package model

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes model errors.
type ErrorCode string

const (
	// ErrCodeIdentifierExhausted indicates the user generation range is used up.
	ErrCodeIdentifierExhausted ErrorCode = "IDENTIFIER_EXHAUSTED"

	// ErrCodeIdentifierParse indicates a persisted identifier could not be parsed.
	ErrCodeIdentifierParse ErrorCode = "IDENTIFIER_PARSE"

	// ErrCodePersistenceFailure indicates the durable log could not be read or written.
	ErrCodePersistenceFailure ErrorCode = "PERSISTENCE_FAILURE"

	// ErrCodeDuplicateIdentifier indicates an entity id is already indexed.
	// Ids are generator-issued, so this is a caller bug.
	ErrCodeDuplicateIdentifier ErrorCode = "DUPLICATE_IDENTIFIER"
)

// Error is returned by every failing model operation.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

func hasCode(err error, code ErrorCode) bool {
	var me *Error
	if errors.As(err, &me) {
		return me.Code == code
	}
	return false
}

// IsIdentifierExhausted reports whether err is an exhausted-generator error.
func IsIdentifierExhausted(err error) bool {
	return hasCode(err, ErrCodeIdentifierExhausted)
}

// IsIdentifierParse reports whether err is an identifier parse error.
func IsIdentifierParse(err error) bool {
	return hasCode(err, ErrCodeIdentifierParse)
}

// IsPersistenceFailure reports whether err came from the durable log.
func IsPersistenceFailure(err error) bool {
	return hasCode(err, ErrCodePersistenceFailure)
}

// IsDuplicateIdentifier reports whether err is a duplicate-id error.
func IsDuplicateIdentifier(err error) bool {
	return hasCode(err, ErrCodeDuplicateIdentifier)
}
