package repository

// Package repository contains data access abstractions for the history
// list. Implementations live in subpackages (e.g. memory).

import "errors"

var (
	// ErrDuplicateID is returned when a record with the same ID already exists.
	ErrDuplicateID = errors.New("duplicate document id")
	// ErrNotFound is returned when no record matches the given ID.
	ErrNotFound = errors.New("document not found")
)

// ListQuery holds pagination and filter parameters for listing documents.
// Search is a case-insensitive substring match over filename, summary
// and skills; empty means no filter.
type ListQuery struct {
	Limit  int
	Offset int
	Search string
}

// PageResult is a generic pagination result wrapper.
// Total counts all records matching the filter, not just the page.
type PageResult[T any] struct {
	Items []T
	Total int
}
