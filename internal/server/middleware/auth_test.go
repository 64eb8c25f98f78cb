package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/homeblocks/internal/server/handlers"
	"github.com/iudanet/homeblocks/internal/server/jwt"
	"github.com/iudanet/homeblocks/pkg/api"
)

const testSecret = "test-secret-key"

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// decodeError разбирает тело ошибки из ответа
func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

// workspaceHandler отвечает workspace из контекста
func workspaceHandler(w http.ResponseWriter, r *http.Request) {
	workspace, ok := handlers.GetWorkspace(r.Context())
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	_, _ = io.WriteString(w, workspace)
}

func TestAuthMiddleware_Success(t *testing.T) {
	tokens := jwt.NewService(testSecret, time.Hour)
	token, err := tokens.Issue("home")
	require.NoError(t, err)

	handler := AuthMiddleware(setupTestLogger(), tokens)(http.HandlerFunc(workspaceHandler))

	for _, scheme := range []string{"Bearer", "bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/blocks/x", nil)
		req.Header.Set("Authorization", scheme+" "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "home", w.Body.String())
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tokens := jwt.NewService(testSecret, time.Hour)
	foreign, err := jwt.NewService("other-secret", time.Hour).Issue("home")
	require.NoError(t, err)
	valid, err := tokens.Issue("home")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "no token", header: "Bearer"},
		{name: "bare token", header: valid},
		{name: "garbage", header: "Bearer not.a.jwt"},
		{name: "wrong secret", header: "Bearer " + foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := AuthMiddleware(setupTestLogger(), tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/blocks/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			resp := decodeError(t, w)
			assert.Equal(t, api.CodeUnauthorized, resp.Code)
			assert.Equal(t, http.StatusUnauthorized, resp.Status)
			assert.Equal(t, api.ObjectError, resp.Object)
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	tokens := jwt.NewService(testSecret, time.Nanosecond)
	token, err := tokens.Issue("home")
	require.NoError(t, err)
	time.Sleep(time.Second)

	handler := AuthMiddleware(setupTestLogger(), tokens)(http.HandlerFunc(workspaceHandler))
	req := httptest.NewRequest(http.MethodGet, "/v1/blocks/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
