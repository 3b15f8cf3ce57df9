package service

import "fmt"

// ValidationError reports a user-correctable problem with submitted fields.
// It is raised before any database call is made; the caller surfaces it as
// an inline message and the operation can simply be retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}
