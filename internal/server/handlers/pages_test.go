package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/homeblocks/pkg/api"
)

func TestPagesHandler_CreatePage(t *testing.T) {
	mux := newTestMux(t, newSQLiteStorage(t))

	root := createPage(t, mux)
	assert.Equal(t, api.TypeChildPage, root.Type)
	assert.Empty(t, root.ParentID)
	assert.JSONEq(t, `{"title":"Home"}`, string(root.Content))

	// parent_id принимается в компактной форме
	body, err := json.Marshal(api.CreatePageRequest{Title: "Sub", ParentID: strings.ReplaceAll(root.ID, "-", "")})
	require.NoError(t, err)
	w := do(t, mux, http.MethodPost, "/v1/pages", string(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sub := decode[api.Node](t, w)
	assert.Equal(t, root.ID, sub.ParentID)

	w = do(t, mux, http.MethodGet, "/v1/blocks/"+root.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[api.Node](t, w).HasChildren)
}

func TestPagesHandler_CreatePage_Errors(t *testing.T) {
	mux := newTestMux(t, newSQLiteStorage(t))

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{name: "invalid json", body: `{`, wantStatus: http.StatusBadRequest, wantCode: api.CodeValidation},
		{name: "empty title", body: `{"title":"  "}`, wantStatus: http.StatusBadRequest, wantCode: api.CodeValidation},
		{name: "bad parent", body: `{"title":"x","parent_id":"nope"}`, wantStatus: http.StatusBadRequest, wantCode: api.CodeValidation},
		{name: "missing parent", body: `{"title":"x","parent_id":"00000000-0000-4000-8000-000000000000"}`, wantStatus: http.StatusNotFound, wantCode: api.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, mux, http.MethodPost, "/v1/pages", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decode[api.ErrorResponse](t, w).Code)
		})
	}
}
