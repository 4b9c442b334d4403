package domain

import (
	"errors"
	"fmt"
)

// ErrConfigNotFound reports a stored configuration row that could not
// be loaded.
var ErrConfigNotFound = errors.New("pricing configuration not found")

// ValidationError reports a malformed or missing field in a product
// specification. Always caller-fixable, never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid product specification: %s %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ConfigurationError reports a product referencing a composition that
// is absent or disabled in the pricing configuration. This is a
// catalog/configuration consistency problem, not a user error.
type ConfigurationError struct {
	Composition Composition
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("composition %q is not available in the pricing configuration", e.Composition)
}
