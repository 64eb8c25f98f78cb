package blocktree

import (
	"context"
	"fmt"

	"github.com/iudanet/homeblocks/internal/models"
	"github.com/iudanet/homeblocks/pkg/api"
)

// Стратегии записи
const (
	StrategyShallow = "shallow"
	StrategyDeep    = "deep"
)

// WriteResult описывает выполненную запись.
// При ошибке возвращается вместе с ней и отражает то, что успело попасть в хранилище.
type WriteResult struct {
	Strategy    string
	LastID      string // id последнего добавленного блока верхнего уровня
	AppendCalls int
	Appended    int // все созданные узлы, включая вложенные
	Deleted     int // для ReplaceChildren
}

// WriteTree записывает blocks в containerID начиная с anchor.
// Если дерево укладывается в бюджет вложенности, используется поверхностная запись
// (пачки по MaxSiblingsPerAppend), иначе глубокая.
// Порядок блоков в хранилище совпадает с порядком в blocks.
func (s *service) WriteTree(
	ctx context.Context,
	containerID string,
	blocks []models.Block,
	anchor Anchor,
) (*WriteResult, error) {
	result := &WriteResult{Strategy: StrategyShallow}
	if len(blocks) == 0 {
		return result, nil
	}

	shape, err := analyze(blocks)
	if err != nil {
		return result, err
	}

	var last Anchor
	if shape.fits() {
		last, err = s.writeShallow(ctx, containerID, blocks, anchor, result)
	} else {
		result.Strategy = StrategyDeep
		last, err = s.writeDeep(ctx, containerID, blocks, shape, anchor, result)
	}
	if err != nil {
		s.logger.Error("Block tree write aborted",
			"container_id", containerID,
			"strategy", result.Strategy,
			"appended", result.Appended,
			"error", err)
		return result, err
	}

	result.LastID = last.ID()
	s.logger.Info("Wrote block tree",
		"container_id", containerID,
		"strategy", result.Strategy,
		"appended", result.Appended,
		"calls", result.AppendCalls,
		"last_id", result.LastID)
	return result, nil
}

// writeShallow отправляет блоки пачками с вложенными потомками.
// Возвращает якорь после последнего записанного блока.
func (s *service) writeShallow(
	ctx context.Context,
	containerID string,
	blocks []models.Block,
	anchor Anchor,
	result *WriteResult,
) (Anchor, error) {
	nodes := toOutgoingList(blocks)

	for start := 0; start < len(nodes); start += MaxSiblingsPerAppend {
		end := min(start+MaxSiblingsPerAppend, len(nodes))
		chunk := nodes[start:end]

		next, err := s.appendChunk(ctx, containerID, chunk, anchor, result)
		if err != nil {
			return anchor, err
		}
		anchor = next
	}
	return anchor, nil
}

func (s *service) appendChunk(
	ctx context.Context,
	containerID string,
	chunk []api.OutgoingNode,
	anchor Anchor,
	result *WriteResult,
) (Anchor, error) {
	resp, err := s.remote.AppendChildren(ctx, containerID, api.AppendChildrenRequest{
		Position: anchor.Position(),
		Children: chunk,
	})
	if err != nil {
		return anchor, fmt.Errorf("failed to append %d blocks to %s: %w", len(chunk), containerID, err)
	}
	result.AppendCalls++
	result.Appended += countOutgoing(chunk)

	next, err := anchor.Advance(resp.Results, len(chunk))
	if err != nil {
		return anchor, fmt.Errorf("append to %s: %w", containerID, err)
	}

	s.logger.Debug("Appended blocks",
		"container_id", containerID,
		"count", len(chunk),
		"anchor", anchor.String(),
		"next_anchor", next.String())
	return next, nil
}

// writeFrame - уровень глубокой записи: список блоков одного контейнера
type writeFrame struct {
	anchor      Anchor
	containerID string
	blocks      []models.Block
	next        int // следующий необработанный блок
	batchStart  int // начало накопленной пачки блоков, помещающихся целиком
}

// writeDeep обходит дерево явным стеком.
// Форма каждого блока берётся из shape, поддеревья повторно не сканируются.
// Блоки, которые помещаются в бюджет вложенности, копятся в пачку.
// Блок, который не помещается, записывается отдельно без потомков,
// после чего его потомки записываются в него как в новый контейнер.
func (s *service) writeDeep(
	ctx context.Context,
	containerID string,
	blocks []models.Block,
	shape treeShape,
	anchor Anchor,
	result *WriteResult,
) (Anchor, error) {
	stack := []*writeFrame{{
		anchor:      anchor,
		containerID: containerID,
		blocks:      blocks,
	}}
	root := stack[0]

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return root.anchor, err
		}

		f := stack[len(stack)-1]

		if f.next >= len(f.blocks) {
			if err := s.flushBatch(ctx, f, result); err != nil {
				return root.anchor, err
			}
			stack = stack[:len(stack)-1]
			continue
		}

		block := f.blocks[f.next]
		fits, err := shape.fitsBlock(&f.blocks[f.next])
		if err != nil {
			return root.anchor, err
		}
		if fits {
			f.next++
			continue
		}

		if err := s.flushBatch(ctx, f, result); err != nil {
			return root.anchor, err
		}

		parent, err := s.appendChunk(ctx, f.containerID,
			[]api.OutgoingNode{ToOutgoing(withoutChildren(block))}, f.anchor, result)
		if err != nil {
			return root.anchor, err
		}
		f.anchor = parent
		f.next++
		f.batchStart = f.next

		s.logger.Debug("Descending into deep block",
			"container_id", parent.ID(),
			"type", block.Type,
			"children", len(block.Children))

		stack = append(stack, &writeFrame{
			anchor:      AtEnd(),
			containerID: parent.ID(),
			blocks:      block.Children,
		})
	}

	return root.anchor, nil
}

// flushBatch записывает накопленную пачку кадра и сдвигает его якорь
func (s *service) flushBatch(ctx context.Context, f *writeFrame, result *WriteResult) error {
	if f.batchStart >= f.next {
		return nil
	}
	next, err := s.writeShallow(ctx, f.containerID, f.blocks[f.batchStart:f.next], f.anchor, result)
	if err != nil {
		return err
	}
	f.anchor = next
	f.batchStart = f.next
	return nil
}
