package store

import "errors"

var (
	// ErrNotFound is returned when a single-row record has never been written.
	ErrNotFound = errors.New("record not found")
	// ErrCorruptRecord is returned when a stored record cannot be decoded.
	ErrCorruptRecord = errors.New("corrupt record")
)
