package repository

import "errors"

var (
	// ErrNotFound is returned by lookups that miss and updates that match
	// no record.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a create violates the document id
	// uniqueness constraint (conditional-write failure).
	ErrAlreadyExists = errors.New("already exists")
)
