// Package model holds the registry entities and the sentinel errors shared
// by the store and service layers.
package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
)

// NewError tags err with the entity it concerns, e.g. "person: not found".
// Match the result with errors.Is.
func NewError(model string, err error) error {
	return fmt.Errorf("%s: %w", strings.ToLower(model), err)
}
