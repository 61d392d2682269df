package database

import "math"

// FindOptions bounds a listing query.
type FindOptions struct {
	Limit  uint
	Offset uint
}

// PageOptions converts a 1-based page number and a page size into limit and
// offset. An offset that does not fit in a bigint saturates, so pages past
// the end stay empty instead of wrapping around.
func PageOptions(pageNumber, pageSize int) FindOptions {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 0 {
		pageSize = 0
	}

	skipped := uint64(pageNumber - 1)
	offset := uint64(math.MaxInt64)
	if pageSize == 0 || skipped <= math.MaxInt64/uint64(pageSize) {
		offset = skipped * uint64(pageSize)
	}

	return FindOptions{
		Limit:  uint(pageSize),
		Offset: uint(offset),
	}
}
