package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/homeblocks/internal/server/storage"
	"github.com/iudanet/homeblocks/internal/validation"
	"github.com/iudanet/homeblocks/pkg/api"
)

// PagesHandler создаёт страницы, которые служат корневыми контейнерами
type PagesHandler struct {
	logger  *slog.Logger
	storage storage.NodeStorage
}

// NewPagesHandler creates a new pages handler
func NewPagesHandler(logger *slog.Logger, storage storage.NodeStorage) *PagesHandler {
	return &PagesHandler{
		logger:  logger,
		storage: storage,
	}
}

// CreatePage обрабатывает POST /v1/pages
func (h *PagesHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req api.CreatePageRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := validation.ValidatePageTitle(req.Title); err != nil {
		WriteError(w, http.StatusBadRequest, api.CodeValidation, err.Error())
		return
	}

	parentID := ""
	if req.ParentID != "" {
		id, err := validation.CanonicalNodeID(req.ParentID)
		if err != nil {
			WriteError(w, http.StatusBadRequest, api.CodeValidation, "body.parent_id should be a valid uuid")
			return
		}
		parentID = id
	}

	page, err := h.storage.CreatePage(r.Context(), parentID, req.Title)
	if err != nil {
		writeStorageError(w, h.logger, err)
		return
	}

	workspace, _ := GetWorkspace(r.Context())
	h.logger.Info("Page created", "workspace", workspace, "page_id", page.ID, "parent_id", parentID)

	if err := WriteJSON(w, http.StatusOK, toAPINode(*page)); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}
