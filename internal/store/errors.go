package store

import "errors"

var (
	// ErrNotFound is returned when a record is absent from an existing document.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidMatch rejects a match without a usable id; nothing is written.
	ErrInvalidMatch = errors.New("invalid match")
	// ErrMissing is returned when a document does not exist on disk yet.
	ErrMissing = errors.New("document missing")
)
