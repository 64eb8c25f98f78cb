package storage

import "context"

// MetadataStorage хранит служебные отметки клиента
type MetadataStorage interface {
	// SaveLastPush saves the time of the last successful push into a container
	SaveLastPush(ctx context.Context, containerID string, timestamp int64) error

	// GetLastPush retrieves the time of the last successful push into a container
	// Returns 0 if nothing has been pushed yet
	GetLastPush(ctx context.Context, containerID string) (int64, error)
}
