package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/homeblocks/internal/server/storage"
	"github.com/iudanet/homeblocks/pkg/api"
)

// contextKey тип для ключей контекста
type contextKey string

// WorkspaceKey ключ для хранения workspace (subject токена) в контексте
const WorkspaceKey contextKey = "workspace"

// GetWorkspace извлекает workspace из контекста запроса
func GetWorkspace(ctx context.Context) (string, bool) {
	workspace, ok := ctx.Value(WorkspaceKey).(string)
	return workspace, ok
}

// maxBodySize ограничение на размер тела запроса
const maxBodySize = 10 << 20

// WriteJSON пишет v как JSON с указанным статусом
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteError пишет тело ошибки в формате хранилища
func WriteError(w http.ResponseWriter, status int, code, message string) {
	_ = WriteJSON(w, status, api.ErrorResponse{
		Object:  api.ObjectError,
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeStorageError переводит ошибки хранилища в HTTP ответ
func writeStorageError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, storage.ErrNodeNotFound):
		WriteError(w, http.StatusNotFound, api.CodeNotFound, "Could not find block. Make sure it exists and was not deleted.")
	case errors.Is(err, storage.ErrValidation):
		WriteError(w, http.StatusBadRequest, api.CodeValidation, err.Error())
	default:
		logger.Error("Storage operation failed", "error", err)
		WriteError(w, http.StatusInternalServerError, api.CodeInternal, "Internal server error")
	}
}

// decodeBody разбирает JSON тело запроса в dst
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, api.CodeValidation, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func toAPINode(n storage.Node) api.Node {
	return api.Node{
		ID:             n.ID,
		ParentID:       n.ParentID,
		Type:           n.Type,
		Content:        n.Content,
		HasChildren:    n.HasChildren,
		Archived:       n.Archived,
		CreatedTime:    n.CreatedAt,
		LastEditedTime: n.UpdatedAt,
	}
}

func toAPINodes(nodes []storage.Node) []api.Node {
	out := make([]api.Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, toAPINode(n))
	}
	return out
}
