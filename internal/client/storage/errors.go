package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no integration token is stored
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrSnapshotNotFound indicates that snapshot was not found
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
