package blocktree

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iudanet/homeblocks/internal/models"
)

// Filter решает, попадает ли узел в результат чтения.
// Отклонённый узел не попадает в результат, и его потомки не читаются.
type Filter func(block models.Block) bool

// NonEmptyText отклоняет текстовые блоки без видимого текста.
// Блоки без текстового payload (divider, image и т.п.) проходят фильтр.
func NonEmptyText(block models.Block) bool {
	if len(block.Content) == 0 {
		return true
	}

	var payload struct {
		Text     *string `json:"text"`
		RichText []struct {
			PlainText string `json:"plain_text"`
			Text      struct {
				Content string `json:"content"`
			} `json:"text"`
		} `json:"rich_text"`
	}
	if err := json.Unmarshal(block.Content, &payload); err != nil {
		return true
	}

	if payload.RichText != nil {
		for _, rt := range payload.RichText {
			if strings.TrimSpace(rt.PlainText) != "" || strings.TrimSpace(rt.Text.Content) != "" {
				return true
			}
		}
		return false
	}
	if payload.Text != nil {
		return strings.TrimSpace(*payload.Text) != ""
	}
	return true
}

// ReadTree читает поддерево containerID в порядке документа.
// Каждый уровень читается целиком по страницам до перехода к потомкам.
// Узлы непрозрачных типов возвращаются без Children.
// Любая ошибка чтения прерывает обход: частичный результат не возвращается.
func (s *service) ReadTree(ctx context.Context, containerID string, filter Filter) ([]models.Block, error) {
	root, expand, err := s.readLevel(ctx, containerID, filter)
	if err != nil {
		return nil, err
	}

	// стек блоков, потомков которых ещё предстоит прочитать
	var pending []*models.Block
	pending = pushExpandable(pending, root, expand)
	calls := 1

	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		block := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		children, childExpand, err := s.readLevel(ctx, block.RemoteID, filter)
		if err != nil {
			return nil, err
		}
		calls++
		block.Children = children
		pending = pushExpandable(pending, children, childExpand)
	}

	s.logger.Info("Read block tree",
		"container_id", containerID,
		"blocks", models.CountBlocks(root),
		"containers_read", calls)
	return root, nil
}

// pushExpandable кладёт блоки на стек в обратном порядке, чтобы первый оказался сверху
func pushExpandable(stack []*models.Block, blocks []models.Block, expand []int) []*models.Block {
	for i := len(expand) - 1; i >= 0; i-- {
		stack = append(stack, &blocks[expand[i]])
	}
	return stack
}

// readLevel читает всех прямых потомков контейнера со всех страниц.
// Возвращает непустой (не nil) срез и индексы блоков, потомков которых нужно прочитать.
func (s *service) readLevel(ctx context.Context, containerID string, filter Filter) ([]models.Block, []int, error) {
	blocks := make([]models.Block, 0)
	var expand []int
	cursor := ""

	for page := 1; ; page++ {
		resp, err := s.remote.ListChildren(ctx, containerID, cursor, s.pageSize)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list children of %s: %w", containerID, err)
		}

		for _, node := range resp.Results {
			block := FromNode(node)
			if filter != nil && !filter(block) {
				continue
			}
			if node.HasChildren && !s.opaqueTypes[node.Type] {
				expand = append(expand, len(blocks))
			}
			blocks = append(blocks, block)
		}

		s.logger.Debug("Listed children page",
			"container_id", containerID,
			"page", page,
			"results", len(resp.Results),
			"has_more", resp.HasMore)

		if resp.NextCursor == nil || *resp.NextCursor == "" {
			break
		}
		if *resp.NextCursor == cursor {
			return nil, nil, fmt.Errorf("%w: cursor %q for %s did not advance", ErrContractViolation, cursor, containerID)
		}
		cursor = *resp.NextCursor
	}

	return blocks, expand, nil
}
