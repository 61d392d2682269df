package service

import (
	"math"

	"github.com/protomem/people-registry/internal/database"
	"github.com/protomem/people-registry/internal/validator"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPageNumber keeps the row offset representable for every page size.
	MaxPageNumber = math.MaxInt32
)

// Page selects a 1-based page of a listing.
type Page struct {
	Number int
	Size   int
}

func (p Page) Validate() error {
	var v validator.Validator
	v.CheckField(validator.Between(p.Number, 1, MaxPageNumber), "pageNumber", "page number must be between 1 and 2147483647")
	v.CheckField(validator.Between(p.Size, 1, MaxPageSize), "pageSize", "page size must be between 1 and 100")
	return v.Err()
}

func (p Page) Options() database.FindOptions {
	return database.PageOptions(p.Number, p.Size)
}
