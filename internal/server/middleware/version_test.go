package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/homeblocks/pkg/api"
)

func TestVersionMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		wantStatus int
		wantCalled bool
	}{
		{name: "supported", version: api.Version, wantStatus: http.StatusNoContent, wantCalled: true},
		{name: "missing", version: "", wantStatus: http.StatusBadRequest},
		{name: "unsupported", version: "2021-05-13", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := VersionMiddleware(setupTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/blocks/x", nil)
			if tt.version != "" {
				req.Header.Set(api.VersionHeader, tt.version)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCalled, called)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCalled {
				assert.Equal(t, api.Version, w.Header().Get(api.VersionHeader))
				return
			}
			resp := decodeError(t, w)
			assert.Equal(t, api.CodeValidation, resp.Code)
			assert.Contains(t, resp.Message, api.VersionHeader)
		})
	}
}
