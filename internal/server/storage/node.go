package storage

import (
	"context"
	"encoding/json"
	"time"
)

// Node узел документа в хранилище песочницы
type Node struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Content     json.RawMessage
	ID          string
	ParentID    string // пусто для страниц верхнего уровня
	Type        string
	Position    int64
	HasChildren bool
	Archived    bool
}

// NewNode узел, который только предстоит вставить, вместе с поддеревом
type NewNode struct {
	Content  json.RawMessage
	Type     string
	Children []NewNode
}

// Insert позиция вставки среди соседей.
// Нулевое значение означает вставку в конец.
type Insert struct {
	AfterID string
	AtStart bool
}

// Page одна страница прямых потомков
type Page struct {
	NextCursor string
	Nodes      []Node
	HasMore    bool
}

//go:generate moq -out node_mock.go . NodeStorage

// NodeStorage defines interface for document tree persistence
type NodeStorage interface {
	// GetNode retrieves a single live node.
	// Returns ErrNodeNotFound if node doesn't exist or is archived
	GetNode(ctx context.Context, id string) (*Node, error)

	// ListChildren returns up to limit live children of parentID in order, starting
	// at cursor (id of the first child to return, empty for the beginning).
	// Returns ErrValidation if cursor is not a live child of parentID
	ListChildren(ctx context.Context, parentID, cursor string, limit int) (*Page, error)

	// AppendChildren inserts nodes with their subtrees at position and returns
	// the full ordered list of live children of parentID after the insert.
	// Returns ErrValidation if position.AfterID is not a live child of parentID
	AppendChildren(ctx context.Context, parentID string, position Insert, nodes []NewNode) ([]Node, error)

	// UpdateNode replaces content of a node. The type of a node cannot change:
	// a different typ returns ErrValidation
	UpdateNode(ctx context.Context, id, typ string, content json.RawMessage) (*Node, error)

	// ArchiveNode marks node and its whole subtree as archived
	ArchiveNode(ctx context.Context, id string) (*Node, error)

	// CreatePage creates a child_page node, top-level if parentID is empty
	CreatePage(ctx context.Context, parentID, title string) (*Node, error)

	// Ping checks that the database is reachable
	Ping(ctx context.Context) error
}
