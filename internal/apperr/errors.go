// Package apperr defines the application error taxonomy shared across layers.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrAlreadyExists  = errors.New("already exists")

	// ErrDeliveryFailed marks an outbound email that the transport rejected.
	ErrDeliveryFailed = errors.New("delivery failed")
)

// ValidationError carries field-level messages for a rejected submission.
// Nothing is committed when a ValidationError is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidation builds a ValidationError for a single offending field.
func NewValidation(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// FromValidation converts an ozzo validation result into a ValidationError.
// A nil input stays nil so callers can wrap Validate() directly.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}
	var ve validation.Errors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for field, ferr := range ve {
			fields[field] = ferr.Error()
		}
		return &ValidationError{Fields: fields}
	}
	return &ValidationError{Fields: map[string]string{"": err.Error()}}
}
