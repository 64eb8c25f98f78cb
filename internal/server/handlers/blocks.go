package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/homeblocks/internal/server/storage"
	"github.com/iudanet/homeblocks/internal/validation"
	"github.com/iudanet/homeblocks/pkg/api"
)

// BlocksHandler обслуживает /v1/blocks и соблюдает ограничения API:
// не больше api.MaxSiblingsPerAppend узлов в массиве children и
// не больше api.MaxInlineNesting уровней вложенности в одном запросе.
type BlocksHandler struct {
	logger  *slog.Logger
	storage storage.NodeStorage
}

// NewBlocksHandler creates a new blocks handler
func NewBlocksHandler(logger *slog.Logger, storage storage.NodeStorage) *BlocksHandler {
	return &BlocksHandler{
		logger:  logger,
		storage: storage,
	}
}

// GetBlock обрабатывает GET /v1/blocks/{id}
func (h *BlocksHandler) GetBlock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	node, err := h.storage.GetNode(r.Context(), id)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}
	h.writeNode(w, node)
}

// ListChildren обрабатывает GET /v1/blocks/{id}/children?start_cursor=&page_size=
func (h *BlocksHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	pageSize := api.MaxPageSize
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > api.MaxPageSize {
			WriteError(w, http.StatusBadRequest, api.CodeValidation,
				fmt.Sprintf("page_size should be a number between 1 and %d", api.MaxPageSize))
			return
		}
		pageSize = n
	}

	page, err := h.storage.ListChildren(r.Context(), id, r.URL.Query().Get("start_cursor"), pageSize)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}

	resp := api.ListChildrenResponse{
		Object:  api.ObjectList,
		Results: toAPINodes(page.Nodes),
		HasMore: page.HasMore,
	}
	if page.HasMore {
		resp.NextCursor = &page.NextCursor
	}
	h.writeJSON(w, resp)
}

// AppendChildren обрабатывает PATCH /v1/blocks/{id}/children
func (h *BlocksHandler) AppendChildren(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req api.AppendChildrenRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if len(req.Children) == 0 {
		WriteError(w, http.StatusBadRequest, api.CodeValidation, "body.children should be a non-empty array")
		return
	}
	if err := validateChildren(req.Children, 0, "body.children"); err != nil {
		WriteError(w, http.StatusBadRequest, api.CodeValidation, err.Error())
		return
	}

	position, err := insertPosition(req.Position)
	if err != nil {
		WriteError(w, http.StatusBadRequest, api.CodeValidation, err.Error())
		return
	}

	siblings, err := h.storage.AppendChildren(r.Context(), id, position, toNewNodes(req.Children))
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}

	workspace, _ := GetWorkspace(r.Context())
	h.logger.Debug("Children appended",
		"workspace", workspace,
		"container_id", id,
		"count", countNodes(req.Children),
		"position", position)

	h.writeJSON(w, api.AppendChildrenResponse{
		Object:  api.ObjectList,
		Results: toAPINodes(siblings),
	})
}

// UpdateBlock обрабатывает PATCH /v1/blocks/{id}
func (h *BlocksHandler) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req api.UpdateNodeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if api.IsReservedType(req.Type) {
		WriteError(w, http.StatusBadRequest, api.CodeValidation, fmt.Sprintf("%q is not a block type", req.Type))
		return
	}
	if len(req.Content) == 0 || req.Content[0] != '{' {
		WriteError(w, http.StatusBadRequest, api.CodeValidation, fmt.Sprintf("body.%s should be an object", req.Type))
		return
	}

	node, err := h.storage.UpdateNode(r.Context(), id, req.Type, req.Content)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}
	h.writeNode(w, node)
}

// DeleteBlock обрабатывает DELETE /v1/blocks/{id}: узел и поддерево архивируются
func (h *BlocksHandler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	node, err := h.storage.ArchiveNode(r.Context(), id)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}
	h.writeNode(w, node)
}

func (h *BlocksHandler) writeNode(w http.ResponseWriter, node *storage.Node) {
	h.writeJSON(w, toAPINode(*node))
}

func (h *BlocksHandler) writeJSON(w http.ResponseWriter, v any) {
	if err := WriteJSON(w, http.StatusOK, v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

// pathID читает {id} из пути и приводит его к каноническому виду
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := validation.CanonicalNodeID(r.PathValue("id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, api.CodeValidation, "path failed validation: id should be a valid uuid")
		return "", false
	}
	return id, true
}

// validateChildren проверяет ограничения на ширину и глубину одного запроса
func validateChildren(nodes []api.OutgoingNode, level int, path string) error {
	if len(nodes) > api.MaxSiblingsPerAppend {
		return fmt.Errorf("%s.length should be ≤ %d, instead was %d", path, api.MaxSiblingsPerAppend, len(nodes))
	}
	for i, n := range nodes {
		if api.IsReservedType(n.Type) {
			return fmt.Errorf("%s[%d].type %q is not a block type", path, i, n.Type)
		}
		if len(n.Children) == 0 {
			continue
		}
		if level >= api.MaxInlineNesting {
			return fmt.Errorf("%s[%d].%s.children should be not present, children may be nested at most %d levels",
				path, i, n.Type, api.MaxInlineNesting)
		}
		if err := validateChildren(n.Children, level+1, fmt.Sprintf("%s[%d].%s.children", path, i, n.Type)); err != nil {
			return err
		}
	}
	return nil
}

func insertPosition(p *api.Position) (storage.Insert, error) {
	if p == nil {
		return storage.Insert{}, nil
	}
	switch p.Type {
	case "", api.PositionEnd:
		return storage.Insert{}, nil
	case api.PositionStart:
		return storage.Insert{AtStart: true}, nil
	case api.PositionAfterBlock:
		if p.AfterBlock == nil {
			return storage.Insert{}, fmt.Errorf("body.position.after_block should be defined")
		}
		id, err := validation.CanonicalNodeID(p.AfterBlock.ID)
		if err != nil {
			return storage.Insert{}, fmt.Errorf("body.position.after_block.id should be a valid uuid")
		}
		return storage.Insert{AfterID: id}, nil
	default:
		return storage.Insert{}, fmt.Errorf("body.position.type should be one of start, after_block, end")
	}
}

func toNewNodes(nodes []api.OutgoingNode) []storage.NewNode {
	out := make([]storage.NewNode, 0, len(nodes))
	for _, n := range nodes {
		nn := storage.NewNode{Type: n.Type, Content: n.Content}
		if len(n.Children) > 0 {
			nn.Children = toNewNodes(n.Children)
		}
		out = append(out, nn)
	}
	return out
}

func countNodes(nodes []api.OutgoingNode) int {
	total := 0
	for _, n := range nodes {
		total += 1 + countNodes(n.Children)
	}
	return total
}
