package models

import (
	"fmt"
	"strings"
)

// ValidationError reports a missing or malformed form field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("field %s is required", e.Field)
	}
	return fmt.Sprintf("field %s %s", e.Field, e.Reason)
}

// required returns a ValidationError for the first blank value in pairs of
// (field, value).
func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return &ValidationError{Field: pairs[i]}
		}
	}
	return nil
}
