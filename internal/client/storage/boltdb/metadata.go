package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"
)

const keyLastPushPrefix = "last_push:"

func lastPushKey(containerID string) []byte {
	return []byte(keyLastPushPrefix + containerID)
}

// SaveLastPush saves the time of the last successful push into containerID
func (s *Storage) SaveLastPush(ctx context.Context, containerID string, timestamp int64) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		// Конвертируем int64 в bytes
		timestampBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(timestampBytes, uint64(timestamp))

		if err := bucket.Put(lastPushKey(containerID), timestampBytes); err != nil {
			return fmt.Errorf("failed to save last push timestamp: %w", err)
		}

		return nil
	})
}

// GetLastPush retrieves the time of the last successful push into containerID
// Returns 0 if nothing has been pushed yet
func (s *Storage) GetLastPush(ctx context.Context, containerID string) (int64, error) {
	var timestamp int64

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		timestampBytes := bucket.Get(lastPushKey(containerID))
		if timestampBytes == nil {
			return nil
		}

		timestamp = int64(binary.BigEndian.Uint64(timestampBytes))
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to get last push timestamp: %w", err)
	}

	return timestamp, nil
}
