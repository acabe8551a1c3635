// Package apperrors defines the error taxonomy shared by all services.
//
// The four "final" kinds (invalid transition, already responded, not found,
// authorization) surface directly to the client and are never retried.
// Validation errors are locally recoverable. Anything else coming out of the
// storage layer is a backend error, wrapped with %w so callers may apply
// their own bounded retry policy.
package apperrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("entity not found")
	ErrInvalidTransition = errors.New("status transition not permitted")
	ErrAlreadyResponded  = errors.New("survey already answered by this user")
	ErrNotModerator      = errors.New("actor lacks moderator capability")
)

// ValidationError reports malformed caller input. For survey submissions it
// names every missing required question and every type-invalid answer, not
// just the first.
type ValidationError struct {
	Message            string
	Fields             []string
	MissingQuestionIDs []uuid.UUID
	InvalidQuestionIDs []uuid.UUID
}

func (e *ValidationError) Error() string {
	parts := []string{e.Message}
	if len(e.Fields) > 0 {
		parts = append(parts, "fields: "+strings.Join(e.Fields, ", "))
	}
	if len(e.MissingQuestionIDs) > 0 {
		parts = append(parts, fmt.Sprintf("missing questions: %v", e.MissingQuestionIDs))
	}
	if len(e.InvalidQuestionIDs) > 0 {
		parts = append(parts, fmt.Sprintf("invalid answers: %v", e.InvalidQuestionIDs))
	}
	return strings.Join(parts, "; ")
}

// Validation builds a field-level validation error.
func Validation(message string, fields ...string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Backend wraps a storage or transport failure. These are the only errors a
// caller may retry.
func Backend(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// IsFinal reports whether err is one of the non-retryable kinds.
func IsFinal(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrAlreadyResponded) ||
		errors.Is(err, ErrNotModerator)
}
