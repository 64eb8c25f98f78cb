package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/homeblocks/internal/server/storage"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	// Используем in-memory database для тестов
	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func createTestPage(t *testing.T, s *Storage) string {
	t.Helper()
	page, err := s.CreatePage(context.Background(), "", "Test page")
	require.NoError(t, err)
	return page.ID
}

func text(s string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"text":%q}`, s))
}

func newNodes(names ...string) []storage.NewNode {
	nodes := make([]storage.NewNode, 0, len(names))
	for _, name := range names {
		nodes = append(nodes, storage.NewNode{Type: "paragraph", Content: text(name)})
	}
	return nodes
}

// texts возвращает тексты узлов по порядку
func texts(t *testing.T, nodes []storage.Node) []string {
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

func TestNew_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.db")

	s, err := New(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Ping(context.Background()))

	var count int
	err = s.DB().QueryRow(`SELECT COUNT(*) FROM nodes`).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
	require.NoError(t, s.Close())

	// повторное открытие не ломается на уже применённых миграциях
	s, err = New(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestCreatePage(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return now }

	page, err := s.CreatePage(ctx, "", "Root")
	require.NoError(t, err)
	assert.Equal(t, "child_page", page.Type)
	assert.Empty(t, page.ParentID)
	assert.JSONEq(t, `{"title":"Root"}`, string(page.Content))
	assert.Equal(t, now, page.CreatedAt)
	assert.False(t, page.HasChildren)

	sub, err := s.CreatePage(ctx, page.ID, "Sub")
	require.NoError(t, err)
	assert.Equal(t, page.ID, sub.ParentID)

	parent, err := s.GetNode(ctx, page.ID)
	require.NoError(t, err)
	assert.True(t, parent.HasChildren)

	_, err = s.CreatePage(ctx, "missing", "x")
	assert.ErrorIs(t, err, storage.ErrNodeNotFound)
}

func TestAppendChildren_Positions(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	pageID := createTestPage(t, s)

	siblings, err := s.AppendChildren(ctx, pageID, storage.Insert{}, newNodes("A", "B", "C"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, texts(t, siblings))

	tests := []struct {
		name     string
		position func([]storage.Node) storage.Insert
		want     []string
	}{
		{
			name:     "after middle",
			position: func(n []storage.Node) storage.Insert { return storage.Insert{AfterID: n[1].ID} },
			want:     []string{"A", "B", "X", "Y", "C"},
		},
		{
			name:     "start",
			position: func([]storage.Node) storage.Insert { return storage.Insert{AtStart: true} },
			want:     []string{"X", "Y", "A", "B", "X", "Y", "C"},
		},
		{
			name:     "after last",
			position: func(n []storage.Node) storage.Insert { return storage.Insert{AfterID: n[len(n)-1].ID} },
			want:     []string{"X", "Y", "A", "B", "X", "Y", "C", "X", "Y"},
		},
		{
			name:     "end",
			position: func([]storage.Node) storage.Insert { return storage.Insert{} },
			want:     []string{"X", "Y", "A", "B", "X", "Y", "C", "X", "Y", "X", "Y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			siblings, err = s.AppendChildren(ctx, pageID, tt.position(siblings), newNodes("X", "Y"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, texts(t, siblings))
		})
	}
}

func TestAppendChildren_Nested(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	pageID := createTestPage(t, s)

	nodes := []storage.NewNode{{
		Type:    "toggle",
		Content: text("outer"),
		Children: []storage.NewNode{{
			Type:     "paragraph",
			Content:  text("inner"),
			Children: newNodes("leaf1", "leaf2"),
		}},
	}}

	siblings, err := s.AppendChildren(ctx, pageID, storage.Insert{}, nodes)
	require.NoError(t, err)
	require.Len(t, siblings, 1)
	assert.True(t, siblings[0].HasChildren)
	assert.Equal(t, pageID, siblings[0].ParentID)

	page, err := s.ListChildren(ctx, siblings[0].ID, "", 100)
	require.NoError(t, err)
	require.Len(t, page.Nodes, 1)
	assert.Equal(t, []string{"inner"}, texts(t, page.Nodes))

	page, err = s.ListChildren(ctx, page.Nodes[0].ID, "", 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"leaf1", "leaf2"}, texts(t, page.Nodes))
	assert.False(t, page.Nodes[0].HasChildren)
}

func TestAppendChildren_Errors(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	pageID := createTestPage(t, s)
	other := createTestPage(t, s)

	foreign, err := s.AppendChildren(ctx, other, storage.Insert{}, newNodes("z"))
	require.NoError(t, err)

	_, err = s.AppendChildren(ctx, "missing", storage.Insert{}, newNodes("a"))
	assert.ErrorIs(t, err, storage.ErrNodeNotFound)

	_, err = s.AppendChildren(ctx, pageID, storage.Insert{AfterID: foreign[0].ID}, newNodes("a"))
	assert.ErrorIs(t, err, storage.ErrValidation)

	// неудачная вставка ничего не оставляет
	page, err := s.ListChildren(ctx, pageID, "", 100)
	require.NoError(t, err)
	assert.Empty(t, page.Nodes)
}

func TestListChildren_Pagination(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	pageID := createTestPage(t, s)

	names := make([]string, 0, 25)
	for i := range 25 {
		names = append(names, fmt.Sprintf("n%02d", i))
	}
	_, err := s.AppendChildren(ctx, pageID, storage.Insert{}, newNodes(names...))
	require.NoError(t, err)

	var got []string
	cursor := ""
	calls := 0
	for {
		page, err := s.ListChildren(ctx, pageID, cursor, 10)
		require.NoError(t, err)
		calls++
		got = append(got, texts(t, page.Nodes)...)
		if !page.HasMore {
			assert.Empty(t, page.NextCursor)
			break
		}
		cursor = page.NextCursor
	}

	assert.Equal(t, names, got)
	assert.Equal(t, 3, calls)

	_, err = s.ListChildren(ctx, pageID, "not-a-child", 10)
	assert.ErrorIs(t, err, storage.ErrValidation)

	_, err = s.ListChildren(ctx, pageID, "", 0)
	assert.ErrorIs(t, err, storage.ErrValidation)
}

func TestUpdateNode(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	pageID := createTestPage(t, s)

	siblings, err := s.AppendChildren(ctx, pageID, storage.Insert{}, newNodes("old"))
	require.NoError(t, err)
	id := siblings[0].ID

	updated, err := s.UpdateNode(ctx, id, "paragraph", text("new"))
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, texts(t, []storage.Node{*updated}))

	_, err = s.UpdateNode(ctx, id, "heading_1", text("x"))
	assert.ErrorIs(t, err, storage.ErrValidation)

	_, err = s.UpdateNode(ctx, "missing", "paragraph", text("x"))
	assert.ErrorIs(t, err, storage.ErrNodeNotFound)
}

func TestArchiveNode(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	pageID := createTestPage(t, s)

	siblings, err := s.AppendChildren(ctx, pageID, storage.Insert{}, []storage.NewNode{
		{Type: "toggle", Content: text("a"), Children: newNodes("a1", "a2")},
		{Type: "paragraph", Content: text("b")},
	})
	require.NoError(t, err)

	children, err := s.ListChildren(ctx, siblings[0].ID, "", 100)
	require.NoError(t, err)
	require.Len(t, children.Nodes, 2)

	archived, err := s.ArchiveNode(ctx, siblings[0].ID)
	require.NoError(t, err)
	assert.True(t, archived.Archived)

	// всё поддерево недоступно
	_, err = s.GetNode(ctx, siblings[0].ID)
	assert.ErrorIs(t, err, storage.ErrNodeNotFound)
	_, err = s.GetNode(ctx, children.Nodes[1].ID)
	assert.ErrorIs(t, err, storage.ErrNodeNotFound)

	page, err := s.ListChildren(ctx, pageID, "", 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, texts(t, page.Nodes))

	// архивный узел не может быть якорем
	_, err = s.AppendChildren(ctx, pageID, storage.Insert{AfterID: siblings[0].ID}, newNodes("x"))
	assert.ErrorIs(t, err, storage.ErrValidation)

	_, err = s.ArchiveNode(ctx, siblings[0].ID)
	assert.ErrorIs(t, err, storage.ErrNodeNotFound)

	// вставка в начало после архивации сохраняет порядок живых узлов
	siblings, err = s.AppendChildren(ctx, pageID, storage.Insert{AtStart: true}, newNodes("s"))
	require.NoError(t, err)
	assert.Equal(t, []string{"s", "b"}, texts(t, siblings))
}
