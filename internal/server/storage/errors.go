package storage

import "errors"

// Common storage errors
var (
	// ErrNodeNotFound indicates that node does not exist or was archived
	ErrNodeNotFound = errors.New("node not found")

	// ErrValidation indicates that request violates the store contract
	// (unknown anchor, foreign cursor, type change and so on)
	ErrValidation = errors.New("validation failed")
)
