package ports

import (
	"errors"
	"fmt"
)

// Common infrastructure errors that can occur while reading external
// datasets.
var (
	// ErrMissingColumn indicates that a required column is absent from the
	// dataset header. Fatal: the pipeline cannot interpret the file.
	ErrMissingColumn = errors.New("required column missing")

	// ErrMissingReferenceData indicates that the title reference table is
	// absent or unreadable. Fatal: dominance scoring cannot proceed.
	ErrMissingReferenceData = errors.New("title reference data missing")

	// ErrEmptyDataset indicates that the dataset contained no usable rows
	// after cleaning.
	ErrEmptyDataset = errors.New("dataset contains no usable rows")

	// ErrConfigNotFound indicates that required configuration is missing.
	ErrConfigNotFound = errors.New("configuration not found")
)

// SourceError represents an error from an external data source.
// It includes the source name and the operation that failed.
type SourceError struct {
	// Source identifies the dataset or reference table involved.
	Source string

	// Operation is the name of the operation that failed.
	Operation string

	// Err is the underlying error that occurred.
	Err error
}

// Error implements the error interface for SourceError.
func (e *SourceError) Error() string {
	return fmt.Sprintf("source error: source=%s, operation=%s, err=%v", e.Source, e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error { return e.Err }

// NewSourceError creates a new SourceError with the given details.
func NewSourceError(source, operation string, err error) *SourceError {
	return &SourceError{
		Source:    source,
		Operation: operation,
		Err:       err,
	}
}
