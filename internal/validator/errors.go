package validator

import "strings"

// Error is returned by operations that rejected their input. It always
// carries the complete list of violated rules.
type Error struct {
	Errors      []string
	FieldErrors map[string]string
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}
