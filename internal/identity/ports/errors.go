package ports

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy of the pipeline.
type ErrorCategory string

const (
	// ErrorSourceUnavailable covers network failures, timeouts and
	// non-success statuses from any external collaborator.
	ErrorSourceUnavailable ErrorCategory = "source_unavailable"

	// ErrorParseFailure covers malformed JSON or HTML.
	ErrorParseFailure ErrorCategory = "parse_failure"

	// ErrorPersistenceFailure covers durable store and cache write errors.
	ErrorPersistenceFailure ErrorCategory = "persistence_failure"

	// ErrorInternal is anything unclassified.
	ErrorInternal ErrorCategory = "internal"
)

// SourceError wraps a collaborator failure with its category.
type SourceError struct {
	Category   ErrorCategory
	Source     string
	Message    string
	Underlying error
	Retryable  bool
}

func (e *SourceError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Source, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Source, e.Category, e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.Underlying
}

// NewSourceError creates a categorized error. Only unavailability is
// retryable.
func NewSourceError(category ErrorCategory, source, message string, underlying error) *SourceError {
	return &SourceError{
		Category:   category,
		Source:     source,
		Message:    message,
		Underlying: underlying,
		Retryable:  category == ErrorSourceUnavailable,
	}
}

// Unavailable is shorthand for a source_unavailable error.
func Unavailable(source, message string, underlying error) *SourceError {
	return NewSourceError(ErrorSourceUnavailable, source, message, underlying)
}

// ParseFailure is shorthand for a parse_failure error.
func ParseFailure(source, message string, underlying error) *SourceError {
	return NewSourceError(ErrorParseFailure, source, message, underlying)
}

// PersistenceFailure is shorthand for a persistence_failure error.
func PersistenceFailure(source, message string, underlying error) *SourceError {
	return NewSourceError(ErrorPersistenceFailure, source, message, underlying)
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}

// CategoryOf extracts the error category from an error.
func CategoryOf(err error) ErrorCategory {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Category
	}
	return ErrorInternal
}
