package blocktree

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/homeblocks/internal/models"
)

// ErrEmptyType is returned by Update when the replacement block has no type.
var ErrEmptyType = errors.New("block type is required")

// Update заменяет type-specific payload узла id. Потомки блока не отправляются.
func (s *service) Update(ctx context.Context, id string, block models.Block) error {
	if block.Type == "" {
		return ErrEmptyType
	}

	if err := s.remote.UpdateNode(ctx, id, UpdateRequest(block)); err != nil {
		return fmt.Errorf("failed to update block %s: %w", id, err)
	}

	s.logger.Info("Block updated", "id", id, "type", block.Type)
	return nil
}

// Delete архивирует узел id вместе с поддеревом
func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.remote.DeleteNode(ctx, id); err != nil {
		return fmt.Errorf("failed to delete block %s: %w", id, err)
	}

	s.logger.Info("Block deleted", "id", id)
	return nil
}

// ReplaceChildren удаляет прямых потомков containerID по одному и записывает blocks в конец.
// Если удаление прервалось, запись не выполняется.
func (s *service) ReplaceChildren(
	ctx context.Context,
	containerID string,
	blocks []models.Block,
) (*WriteResult, error) {
	existing, _, err := s.readLevel(ctx, containerID, nil)
	if err != nil {
		return &WriteResult{}, err
	}

	deleted := 0
	for _, block := range existing {
		if err := s.Delete(ctx, block.RemoteID); err != nil {
			return &WriteResult{Deleted: deleted}, err
		}
		deleted++
	}

	s.logger.Debug("Cleared container", "container_id", containerID, "deleted", deleted)

	result, err := s.WriteTree(ctx, containerID, blocks, AtEnd())
	result.Deleted = deleted
	return result, err
}
