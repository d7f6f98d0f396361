package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is usually carried by a ValidationErrors value that names the offending fields.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)

// NonFieldErrorsKey is the key used for errors that are not tied to a single field.
const NonFieldErrorsKey = "non_field_errors"

// ValidationErrors maps field names to the list of problems found with that field.
// It always unwraps to ErrValidation so callers can use errors.Is.
type ValidationErrors map[string][]string

// NewValidationError creates a ValidationErrors holding a single field error.
func NewValidationError(field, message string) ValidationErrors {
	return ValidationErrors{field: {message}}
}

// Add records a message for the given field.
func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

// Has reports whether the given field has at least one error.
func (v ValidationErrors) Has(field string) bool {
	return len(v[field]) > 0
}

// Fields returns the names of all fields with errors, sorted.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// ErrOrNil returns v as an error if it holds any messages, nil otherwise.
func (v ValidationErrors) ErrOrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, field := range v.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(v[field], " ")))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

// Unwrap returns ErrValidation to support errors.Is.
func (v ValidationErrors) Unwrap() error {
	return ErrValidation
}
