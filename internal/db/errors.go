package db

import "errors"

// Domain-level database error sentinels.
var (
	// Outcome errors
	ErrEmptyLabel = errors.New("outcome label is empty")
	ErrEmptyMode  = errors.New("outcome mode is empty")
)
