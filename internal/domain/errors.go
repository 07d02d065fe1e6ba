package domain

import (
	"errors"
	"fmt"
)

// Common domain errors that can occur while building team statistics.
var (
	// ErrNoMatches indicates that aggregation received an empty record set.
	ErrNoMatches = errors.New("no match records to aggregate")

	// ErrUnknownTeam indicates that a team name could not be resolved to a
	// canonical entry. Non-fatal for title joins, where it defaults to zero.
	ErrUnknownTeam = errors.New("unknown team")

	// ErrInvalidConfiguration indicates that configuration is invalid or
	// incomplete.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// RecordError represents a data-quality failure on a single input row.
// It carries the row number and a short reason so skipped rows can be
// surfaced in the final report.
type RecordError struct {
	// Row is the 1-based row number in the source file, counting the
	// header, matching what a reader sees in a text editor.
	Row int

	// Reason describes why the row was rejected.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface for RecordError.
func (e *RecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record error: row=%d, reason=%s, err=%v", e.Row, e.Reason, e.Err)
	}
	return fmt.Sprintf("record error: row=%d, reason=%s", e.Row, e.Reason)
}

// Unwrap returns the underlying error, supporting errors.Is and errors.As.
func (e *RecordError) Unwrap() error { return e.Err }

// NewRecordError creates a new RecordError for the given row.
func NewRecordError(row int, reason string, err error) *RecordError {
	return &RecordError{Row: row, Reason: reason, Err: err}
}

// ValidationError represents an error that occurred during validation.
// It can contain multiple validation failures.
type ValidationError struct {
	// Entity is the name of the entity that failed validation.
	Entity string

	// Errors contains the list of validation error messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// AddError adds a new error message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates a new ValidationError for the given entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Errors: make([]string, 0),
	}
}
