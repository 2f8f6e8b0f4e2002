package serializer

import "fmt"

// ValidationError reports malformed or policy-violating input. It maps to a
// 400 response; anything else coming out of this package is a persistence
// error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
