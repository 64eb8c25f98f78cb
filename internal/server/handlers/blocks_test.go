package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/homeblocks/internal/server/storage"
	"github.com/iudanet/homeblocks/internal/server/storage/sqlite"
	"github.com/iudanet/homeblocks/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestMux регистрирует обработчики так же, как сервер, но без middleware
func newTestMux(t *testing.T, store storage.NodeStorage) *http.ServeMux {
	t.Helper()
	logger := setupTestLogger()
	blocks := NewBlocksHandler(logger, store)
	pages := NewPagesHandler(logger, store)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/pages", pages.CreatePage)
	mux.HandleFunc("GET /v1/blocks/{id}", blocks.GetBlock)
	mux.HandleFunc("PATCH /v1/blocks/{id}", blocks.UpdateBlock)
	mux.HandleFunc("DELETE /v1/blocks/{id}", blocks.DeleteBlock)
	mux.HandleFunc("GET /v1/blocks/{id}/children", blocks.ListChildren)
	mux.HandleFunc("PATCH /v1/blocks/{id}/children", blocks.AppendChildren)
	return mux
}

func newSQLiteStorage(t *testing.T) *sqlite.Storage {
	t.Helper()
	s, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), w.Body.String())
	return v
}

func createPage(t *testing.T, h http.Handler) api.Node {
	t.Helper()
	w := do(t, h, http.MethodPost, "/v1/pages", `{"title":"Home"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[api.Node](t, w)
}

func paragraphs(names ...string) []api.OutgoingNode {
	nodes := make([]api.OutgoingNode, 0, len(names))
	for _, name := range names {
		nodes = append(nodes, api.OutgoingNode{Type: "paragraph", Content: json.RawMessage(fmt.Sprintf(`{"text":%q}`, name))})
	}
	return nodes
}

func appendBody(t *testing.T, req api.AppendChildrenRequest) string {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return string(body)
}

func nodeTexts(t *testing.T, nodes []api.Node) []string {
	t.Helper()
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		var payload struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.Unmarshal(n.Content, &payload))
		out = append(out, payload.Text)
	}
	return out
}

func TestBlocksHandler_AppendAndList(t *testing.T) {
	mux := newTestMux(t, newSQLiteStorage(t))
	page := createPage(t, mux)

	w := do(t, mux, http.MethodPatch, "/v1/blocks/"+page.ID+"/children",
		appendBody(t, api.AppendChildrenRequest{Children: paragraphs("a", "c")}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	appended := decode[api.AppendChildrenResponse](t, w)
	assert.Equal(t, api.ObjectList, appended.Object)
	require.Len(t, appended.Results, 2)

	// вставка после первого узла, id в компактной форме
	compact := strings.ReplaceAll(appended.Results[0].ID, "-", "")
	w = do(t, mux, http.MethodPatch, "/v1/blocks/"+page.ID+"/children", appendBody(t, api.AppendChildrenRequest{
		Position: &api.Position{Type: api.PositionAfterBlock, AfterBlock: &api.BlockRef{ID: compact}},
		Children: paragraphs("b"),
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"a", "b", "c"}, nodeTexts(t, decode[api.AppendChildrenResponse](t, w).Results))

	w = do(t, mux, http.MethodGet, "/v1/blocks/"+page.ID+"/children?page_size=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	first := decode[api.ListChildrenResponse](t, w)
	assert.Equal(t, []string{"a", "b"}, nodeTexts(t, first.Results))
	require.True(t, first.HasMore)
	require.NotNil(t, first.NextCursor)

	w = do(t, mux, http.MethodGet, "/v1/blocks/"+page.ID+"/children?page_size=2&start_cursor="+*first.NextCursor, "")
	require.Equal(t, http.StatusOK, w.Code)
	second := decode[api.ListChildrenResponse](t, w)
	assert.Equal(t, []string{"c"}, nodeTexts(t, second.Results))
	assert.False(t, second.HasMore)
	assert.Nil(t, second.NextCursor)
}

func TestBlocksHandler_AppendNested(t *testing.T) {
	mux := newTestMux(t, newSQLiteStorage(t))
	page := createPage(t, mux)

	nested := paragraphs("top")
	nested[0].Children = paragraphs("mid")
	nested[0].Children[0].Children = paragraphs("leaf")

	w := do(t, mux, http.MethodPatch, "/v1/blocks/"+page.ID+"/children",
		appendBody(t, api.AppendChildrenRequest{Children: nested}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	top := decode[api.AppendChildrenResponse](t, w).Results[0]
	assert.True(t, top.HasChildren)

	w = do(t, mux, http.MethodGet, "/v1/blocks/"+top.ID+"/children", "")
	require.Equal(t, http.StatusOK, w.Code)
	mid := decode[api.ListChildrenResponse](t, w).Results
	assert.Equal(t, []string{"mid"}, nodeTexts(t, mid))
	assert.True(t, mid[0].HasChildren)
}

func TestBlocksHandler_AppendValidation(t *testing.T) {
	mux := newTestMux(t, newSQLiteStorage(t))
	page := createPage(t, mux)

	tooDeep := paragraphs("l0")
	tooDeep[0].Children = paragraphs("l1")
	tooDeep[0].Children[0].Children = paragraphs("l2")
	tooDeep[0].Children[0].Children[0].Children = paragraphs("l3")

	wide := make([]string, api.MaxSiblingsPerAppend+1)
	for i := range wide {
		wide[i] = fmt.Sprint(i)
	}

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "invalid json", body: `{"children":`, wantMsg: "Invalid request body"},
		{name: "empty children", body: `{"children":[]}`, wantMsg: "non-empty"},
		{name: "too deep", body: appendBody(t, api.AppendChildrenRequest{Children: tooDeep}), wantMsg: "nested at most 2 levels"},
		{name: "too wide", body: appendBody(t, api.AppendChildrenRequest{Children: paragraphs(wide...)}), wantMsg: "should be ≤ 100"},
		{name: "reserved type", body: `{"children":[{"type":"archived","archived":{}}]}`, wantMsg: "is not a block type"},
		{name: "after without block", body: `{"position":{"type":"after_block"},"children":[{"type":"paragraph","paragraph":{}}]}`, wantMsg: "after_block should be defined"},
		{name: "unknown position", body: `{"position":{"type":"middle"},"children":[{"type":"paragraph","paragraph":{}}]}`, wantMsg: "position.type"},
		{name: "foreign anchor", body: `{"position":{"type":"after_block","after_block":{"id":"` + page.ID + `"}},"children":[{"type":"paragraph","paragraph":{}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, mux, http.MethodPatch, "/v1/blocks/"+page.ID+"/children", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			resp := decode[api.ErrorResponse](t, w)
			assert.Equal(t, api.CodeValidation, resp.Code)
			assert.Contains(t, resp.Message, tt.wantMsg)
		})
	}
}

func TestBlocksHandler_NotFoundAndBadID(t *testing.T) {
	mux := newTestMux(t, newSQLiteStorage(t))
	missing := "00000000-0000-4000-8000-000000000000"

	w := do(t, mux, http.MethodGet, "/v1/blocks/"+missing, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, api.CodeNotFound, decode[api.ErrorResponse](t, w).Code)

	w = do(t, mux, http.MethodGet, "/v1/blocks/not-a-uuid/children", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[api.ErrorResponse](t, w).Message, "valid uuid")

	for _, size := range []string{"0", "101", "abc"} {
		w = do(t, mux, http.MethodGet, "/v1/blocks/"+missing+"/children?page_size="+size, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, size)
	}
}

func TestBlocksHandler_UpdateAndDelete(t *testing.T) {
	mux := newTestMux(t, newSQLiteStorage(t))
	page := createPage(t, mux)

	w := do(t, mux, http.MethodPatch, "/v1/blocks/"+page.ID+"/children",
		appendBody(t, api.AppendChildrenRequest{Children: paragraphs("old", "keep")}))
	require.Equal(t, http.StatusOK, w.Code)
	ids := decode[api.AppendChildrenResponse](t, w).Results

	w = do(t, mux, http.MethodPatch, "/v1/blocks/"+ids[0].ID, `{"paragraph":{"text":"new"}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[api.Node](t, w)
	assert.Equal(t, []string{"new"}, nodeTexts(t, []api.Node{updated}))

	w = do(t, mux, http.MethodPatch, "/v1/blocks/"+ids[0].ID, `{"heading_1":{"text":"x"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, mux, http.MethodPatch, "/v1/blocks/"+ids[0].ID, `{"paragraph":"text"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, mux, http.MethodPatch, "/v1/blocks/"+ids[0].ID, `{"paragraph":{},"heading_1":{}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, mux, http.MethodDelete, "/v1/blocks/"+ids[0].ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[api.Node](t, w).Archived)

	w = do(t, mux, http.MethodGet, "/v1/blocks/"+page.ID+"/children", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"keep"}, nodeTexts(t, decode[api.ListChildrenResponse](t, w).Results))

	w = do(t, mux, http.MethodDelete, "/v1/blocks/"+ids[0].ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBlocksHandler_StorageFailure(t *testing.T) {
	store := &storage.NodeStorageMock{
		GetNodeFunc: func(ctx context.Context, id string) (*storage.Node, error) {
			return nil, errors.New("disk I/O error")
		},
	}
	mux := newTestMux(t, store)

	w := do(t, mux, http.MethodGet, "/v1/blocks/00000000-0000-4000-8000-000000000000", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode[api.ErrorResponse](t, w)
	assert.Equal(t, api.CodeInternal, resp.Code)
	assert.NotContains(t, resp.Message, "disk")
	require.Len(t, store.GetNodeCalls(), 1)
	assert.Equal(t, "00000000-0000-4000-8000-000000000000", store.GetNodeCalls()[0].ID)
}

func TestCountNodes(t *testing.T) {
	nodes := paragraphs("a", "b")
	nodes[1].Children = paragraphs("c", "d")
	assert.Equal(t, 4, countNodes(nodes))
	assert.Zero(t, countNodes(nil))
}

func TestBlocksHandler_BodyTooLarge(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(`{"children":[{"type":"paragraph","paragraph":{"text":"`)
	buf.WriteString(strings.Repeat("x", maxBodySize))
	buf.WriteString(`"}}]}`)
	mux := newTestMux(t, newSQLiteStorage(t))
	w := do(t, mux, http.MethodPatch, "/v1/blocks/00000000-0000-4000-8000-000000000000/children", buf.String())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
