package storage

import (
	"context"

	"github.com/iudanet/homeblocks/internal/models"
)

//go:generate moq -out snapshot_mock.go . SnapshotStorage

// SnapshotStorage хранит локальные копии прочитанных поддеревьев
type SnapshotStorage interface {
	// SaveSnapshot stores a snapshot. Empty ID is replaced with a generated one.
	SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error

	// GetSnapshot returns ErrSnapshotNotFound if id is unknown
	GetSnapshot(ctx context.Context, id string) (*models.Snapshot, error)

	// ListSnapshots returns snapshots ordered by TakenAt, without block bodies
	ListSnapshots(ctx context.Context) ([]models.Snapshot, error)

	// DeleteSnapshot returns ErrSnapshotNotFound if id is unknown
	DeleteSnapshot(ctx context.Context, id string) error
}
