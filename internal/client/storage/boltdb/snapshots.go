package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/iudanet/homeblocks/internal/client/storage"
	"github.com/iudanet/homeblocks/internal/models"
)

// SaveSnapshot stores a snapshot under its ID, generating one if empty
func (s *Storage) SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}
	if snapshot.TakenAt.IsZero() {
		snapshot.TakenAt = s.now().UTC()
	}
	snapshot.BlockCount = models.CountBlocks(snapshot.Blocks)

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshots)
		if bucket == nil {
			return fmt.Errorf("snapshots bucket not found")
		}

		data, err := json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot: %w", err)
		}

		if err := bucket.Put([]byte(snapshot.ID), data); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}

		return nil
	})
}

// GetSnapshot retrieves a snapshot by ID
func (s *Storage) GetSnapshot(ctx context.Context, id string) (*models.Snapshot, error) {
	var snapshot *models.Snapshot

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshots)
		if bucket == nil {
			return fmt.Errorf("snapshots bucket not found")
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrSnapshotNotFound
		}

		snapshot = &models.Snapshot{}
		if err := json.Unmarshal(data, snapshot); err != nil {
			return fmt.Errorf("failed to unmarshal snapshot %s: %w", id, err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// ListSnapshots returns all snapshots ordered by TakenAt without their blocks
func (s *Storage) ListSnapshots(ctx context.Context) ([]models.Snapshot, error) {
	var snapshots []models.Snapshot

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshots)
		if bucket == nil {
			return fmt.Errorf("snapshots bucket not found")
		}

		return bucket.ForEach(func(k, v []byte) error {
			var snapshot models.Snapshot
			if err := json.Unmarshal(v, &snapshot); err != nil {
				return fmt.Errorf("failed to unmarshal snapshot %s: %w", k, err)
			}
			snapshot.Blocks = nil
			snapshots = append(snapshots, snapshot)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].TakenAt.Before(snapshots[j].TakenAt)
	})

	return snapshots, nil
}

// DeleteSnapshot removes a snapshot by ID
func (s *Storage) DeleteSnapshot(ctx context.Context, id string) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshots)
		if bucket == nil {
			return fmt.Errorf("snapshots bucket not found")
		}

		if bucket.Get([]byte(id)) == nil {
			return storage.ErrSnapshotNotFound
		}

		if err := bucket.Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete snapshot: %w", err)
		}
		return nil
	})
}

var (
	_ storage.AuthStorage     = (*Storage)(nil)
	_ storage.SnapshotStorage = (*Storage)(nil)
	_ storage.MetadataStorage = (*Storage)(nil)
)
