package validation

import (
	"strings"
)

// Errors is a collection of field errors returned as a single error value
// so callers can surface all problems at once
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Fields returns the underlying field errors for API responses
func (e Errors) Fields() []FieldError {
	return e
}
