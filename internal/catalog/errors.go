package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidType is returned when the entity-kind token is not one of
	// faculty, students, courses, rooms. Checked before any store access.
	ErrInvalidType = errors.New("invalid data type")

	// ErrNotFound is returned by update/delete when no record exists at the
	// given identifier.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidPayload is returned when an upload body cannot be interpreted
	// as a record or a sequence of records. The whole batch is rejected.
	ErrInvalidPayload = errors.New("invalid payload")
)

// ValidationError reports a single-record constraint violation: a missing
// required field, a bad enum value, or a duplicate natural key. During bulk
// import these are collected per record instead of aborting the batch.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a per-record validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
