package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/homeblocks/internal/server/storage"
)

var _ storage.NodeStorage = (*Storage)(nil)

// querier общий интерфейс *sql.DB и *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const nodeColumns = `
	n.id, COALESCE(n.parent_id, ''), n.position, n.type, n.content, n.archived,
	n.created_at, n.updated_at,
	EXISTS(SELECT 1 FROM nodes c WHERE c.parent_id = n.id AND c.archived = 0)`

// GetNode retrieves a single live node
func (s *Storage) GetNode(ctx context.Context, id string) (*storage.Node, error) {
	return getNode(ctx, s.db, id, false)
}

// ListChildren returns one page of live children of parentID
func (s *Storage) ListChildren(ctx context.Context, parentID, cursor string, limit int) (*storage.Page, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: page size must be positive", storage.ErrValidation)
	}

	if _, err := getNode(ctx, s.db, parentID, false); err != nil {
		return nil, err
	}

	var from int64
	if cursor != "" {
		pos, err := childPosition(ctx, s.db, parentID, cursor)
		if err != nil {
			if errors.Is(err, storage.ErrNodeNotFound) {
				return nil, fmt.Errorf("%w: start_cursor %s is not a child of %s", storage.ErrValidation, cursor, parentID)
			}
			return nil, err
		}
		from = pos
	}

	query := `SELECT ` + nodeColumns + `
		FROM nodes n
		WHERE n.parent_id = ? AND n.archived = 0 AND n.position >= ?
		ORDER BY n.position
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, parentID, from, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	nodes, err := scanNodes(rows)
	if err != nil {
		return nil, err
	}

	page := &storage.Page{Nodes: nodes}
	if len(nodes) > limit {
		page.NextCursor = nodes[limit].ID
		page.HasMore = true
		page.Nodes = nodes[:limit]
	}
	return page, nil
}

// AppendChildren вставляет узлы с поддеревьями одной транзакцией
func (s *Storage) AppendChildren(ctx context.Context, parentID string, position storage.Insert, nodes []storage.NewNode) ([]storage.Node, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := getNode(ctx, tx, parentID, false); err != nil {
		return nil, err
	}

	insertAt, err := s.insertPosition(ctx, tx, parentID, position)
	if err != nil {
		return nil, err
	}

	// Освобождаем место под новые узлы
	if position.AtStart || position.AfterID != "" {
		_, err := tx.ExecContext(ctx,
			`UPDATE nodes SET position = position + ? WHERE parent_id = ? AND position >= ?`,
			len(nodes), parentID, insertAt)
		if err != nil {
			return nil, fmt.Errorf("failed to shift siblings: %w", err)
		}
	}

	now := s.now().UnixMilli()
	if err := insertTree(ctx, tx, parentID, insertAt, nodes, now); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE nodes SET updated_at = ? WHERE id = ?`, now, parentID); err != nil {
		return nil, fmt.Errorf("failed to touch parent: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `SELECT `+nodeColumns+`
		FROM nodes n
		WHERE n.parent_id = ? AND n.archived = 0
		ORDER BY n.position`, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list siblings: %w", err)
	}
	siblings, err := scanNodes(rows)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return siblings, nil
}

func (s *Storage) insertPosition(ctx context.Context, q querier, parentID string, position storage.Insert) (int64, error) {
	switch {
	case position.AtStart:
		return 0, nil
	case position.AfterID != "":
		pos, err := childPosition(ctx, q, parentID, position.AfterID)
		if err != nil {
			if errors.Is(err, storage.ErrNodeNotFound) {
				return 0, fmt.Errorf("%w: block %s is not a child of %s", storage.ErrValidation, position.AfterID, parentID)
			}
			return 0, err
		}
		return pos + 1, nil
	default:
		return nextPosition(ctx, q, parentID)
	}
}

// insertTree вставляет nodes начиная с позиции at, потомков - рекурсивно
func insertTree(ctx context.Context, q querier, parentID string, at int64, nodes []storage.NewNode, now int64) error {
	for i, n := range nodes {
		id := uuid.NewString()
		_, err := q.ExecContext(ctx, `
			INSERT INTO nodes (id, parent_id, position, type, content, archived, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
			id, parentID, at+int64(i), n.Type, string(contentOrEmpty(n.Content)), now, now)
		if err != nil {
			return fmt.Errorf("failed to insert node: %w", err)
		}

		if err := insertTree(ctx, q, id, 0, n.Children, now); err != nil {
			return err
		}
	}
	return nil
}

// UpdateNode replaces content of a node keeping its type
func (s *Storage) UpdateNode(ctx context.Context, id, typ string, content json.RawMessage) (*storage.Node, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	node, err := getNode(ctx, tx, id, false)
	if err != nil {
		return nil, err
	}
	if node.Type != typ {
		return nil, fmt.Errorf("%w: block %s has type %q and cannot become %q", storage.ErrValidation, id, node.Type, typ)
	}

	_, err = tx.ExecContext(ctx, `UPDATE nodes SET content = ?, updated_at = ? WHERE id = ?`,
		string(contentOrEmpty(content)), s.now().UnixMilli(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update node: %w", err)
	}

	updated, err := getNode(ctx, tx, id, false)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return updated, nil
}

// ArchiveNode архивирует узел вместе со всем поддеревом
func (s *Storage) ArchiveNode(ctx context.Context, id string) (*storage.Node, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := getNode(ctx, tx, id, false); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		WITH RECURSIVE subtree(id) AS (
			SELECT id FROM nodes WHERE id = ?
			UNION ALL
			SELECT n.id FROM nodes n JOIN subtree s ON n.parent_id = s.id
		)
		UPDATE nodes SET archived = 1, updated_at = ?
		WHERE id IN (SELECT id FROM subtree)`,
		id, s.now().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to archive subtree: %w", err)
	}

	node, err := getNode(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return node, nil
}

// CreatePage creates a child_page node
func (s *Storage) CreatePage(ctx context.Context, parentID, title string) (*storage.Node, error) {
	content, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal page title: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	parent := sql.NullString{String: parentID, Valid: parentID != ""}
	if parent.Valid {
		if _, err := getNode(ctx, tx, parentID, false); err != nil {
			return nil, err
		}
	}

	position, err := nextPosition(ctx, tx, parentID)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	now := s.now().UnixMilli()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO nodes (id, parent_id, position, type, content, archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 0, ?, ?)`,
		id, parent, position, "child_page", string(content), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert page: %w", err)
	}

	page, err := getNode(ctx, tx, id, false)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return page, nil
}

func getNode(ctx context.Context, q querier, id string, includeArchived bool) (*storage.Node, error) {
	query := `SELECT ` + nodeColumns + ` FROM nodes n WHERE n.id = ?`
	if !includeArchived {
		query += ` AND n.archived = 0`
	}

	node, err := scanNode(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNodeNotFound
		}
		return nil, fmt.Errorf("failed to get node: %w", err)
	}
	return node, nil
}

// childPosition возвращает позицию живого потомка parentID
func childPosition(ctx context.Context, q querier, parentID, id string) (int64, error) {
	var pos int64
	err := q.QueryRowContext(ctx,
		`SELECT position FROM nodes WHERE id = ? AND parent_id = ? AND archived = 0`,
		id, parentID).Scan(&pos)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrNodeNotFound
		}
		return 0, fmt.Errorf("failed to get child position: %w", err)
	}
	return pos, nil
}

// nextPosition позиция после последнего потомка, включая архивные
func nextPosition(ctx context.Context, q querier, parentID string) (int64, error) {
	query := `SELECT COALESCE(MAX(position) + 1, 0) FROM nodes WHERE parent_id = ?`
	args := []any{parentID}
	if parentID == "" {
		query = `SELECT COALESCE(MAX(position) + 1, 0) FROM nodes WHERE parent_id IS NULL`
		args = nil
	}

	var pos int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&pos); err != nil {
		return 0, fmt.Errorf("failed to get next position: %w", err)
	}
	return pos, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNode(row rowScanner) (*storage.Node, error) {
	node := &storage.Node{}
	var content string
	var archived int
	var createdAt, updatedAt int64

	err := row.Scan(
		&node.ID,
		&node.ParentID,
		&node.Position,
		&node.Type,
		&content,
		&archived,
		&createdAt,
		&updatedAt,
		&node.HasChildren,
	)
	if err != nil {
		return nil, err
	}

	node.Content = json.RawMessage(content)
	node.Archived = intToBool(archived)
	node.CreatedAt = unixMilliToTime(createdAt)
	node.UpdatedAt = unixMilliToTime(updatedAt)
	return node, nil
}

// scanNodes is a helper function to scan multiple nodes from rows
func scanNodes(rows *sql.Rows) ([]storage.Node, error) {
	defer rows.Close()

	nodes := make([]storage.Node, 0)
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		nodes = append(nodes, *node)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return nodes, nil
}

func contentOrEmpty(content json.RawMessage) json.RawMessage {
	if len(content) == 0 || string(content) == "null" {
		return json.RawMessage("{}")
	}
	return content
}

func intToBool(i int) bool {
	return i != 0
}

func unixMilliToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
