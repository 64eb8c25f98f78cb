package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// Ограничения удалённого хранилища, зафиксированные контрактом API
const (
	// MaxSiblingsPerAppend максимальное количество узлов в одном массиве children запроса append
	MaxSiblingsPerAppend = 100
	// MaxInlineNesting максимальная глубина вложенности children внутри одного запроса append
	MaxInlineNesting = 2
	// MaxPageSize максимальный размер страницы при чтении children
	MaxPageSize = 100
)

// Version значение заголовка VersionHeader, которое понимает хранилище
const (
	VersionHeader = "Docstore-Version"
	Version       = "2025-09-03"
)

// ObjectBlock и другие значения поля "object" в ответах
const (
	ObjectBlock = "block"
	ObjectList  = "list"
	ObjectError = "error"
)

// Типы узлов, которые используются самим хранилищем
const (
	TypeChildPage     = "child_page"
	TypeChildDatabase = "child_database"
)

// reservedKeys ключи верхнего уровня узла, которые не могут быть именем типа
var reservedKeys = map[string]bool{
	"object":           true,
	"id":               true,
	"parent_id":        true,
	"type":             true,
	"has_children":     true,
	"archived":         true,
	"created_time":     true,
	"last_edited_time": true,
	"children":         true,
}

// IsReservedType reports whether typ collides with a top-level wire key.
func IsReservedType(typ string) bool {
	return reservedKeys[typ]
}

// Node представляет узел документа в том виде, в котором его отдаёт хранилище.
// Content хранит объект, лежащий на проводе под ключом, равным Type.
type Node struct {
	CreatedTime    time.Time
	LastEditedTime time.Time
	Content        json.RawMessage
	ID             string
	ParentID       string
	Type           string
	HasChildren    bool
	Archived       bool
}

type nodeHeader struct {
	CreatedTime    time.Time `json:"created_time"`
	LastEditedTime time.Time `json:"last_edited_time"`
	Object         string    `json:"object"`
	ID             string    `json:"id"`
	ParentID       string    `json:"parent_id,omitempty"`
	Type           string    `json:"type"`
	HasChildren    bool      `json:"has_children"`
	Archived       bool      `json:"archived"`
}

// MarshalJSON кодирует узел в формат {"type": T, T: {...}}
func (n Node) MarshalJSON() ([]byte, error) {
	if IsReservedType(n.Type) {
		return nil, fmt.Errorf("node type %q collides with a reserved key", n.Type)
	}

	header, err := json.Marshal(nodeHeader{
		CreatedTime:    n.CreatedTime,
		LastEditedTime: n.LastEditedTime,
		Object:         ObjectBlock,
		ID:             n.ID,
		ParentID:       n.ParentID,
		Type:           n.Type,
		HasChildren:    n.HasChildren,
		Archived:       n.Archived,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal node header: %w", err)
	}

	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(header, &fields); err != nil {
		return nil, fmt.Errorf("failed to build node fields: %w", err)
	}
	if n.Type != "" {
		fields[n.Type] = objectOrEmpty(n.Content)
	}

	return json.Marshal(fields)
}

// UnmarshalJSON разбирает узел, вынимая payload по ключу типа
func (n *Node) UnmarshalJSON(data []byte) error {
	var header nodeHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return fmt.Errorf("failed to decode node: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to decode node fields: %w", err)
	}

	*n = Node{
		CreatedTime:    header.CreatedTime,
		LastEditedTime: header.LastEditedTime,
		ID:             header.ID,
		ParentID:       header.ParentID,
		Type:           header.Type,
		HasChildren:    header.HasChildren,
		Archived:       header.Archived,
	}
	if payload, ok := fields[header.Type]; ok && header.Type != "" {
		n.Content = payload
	}

	return nil
}

// OutgoingNode узел в форме, пригодной для запроса append.
// Children встраиваются в payload типа под ключом "children".
type OutgoingNode struct {
	Content  json.RawMessage
	Type     string
	Children []OutgoingNode
}

// MarshalJSON кодирует узел как {"object":"block","type":T,T:{...,"children":[...]}}
func (o OutgoingNode) MarshalJSON() ([]byte, error) {
	if o.Type == "" {
		return nil, fmt.Errorf("outgoing node has empty type")
	}
	if IsReservedType(o.Type) {
		return nil, fmt.Errorf("node type %q collides with a reserved key", o.Type)
	}

	payload := make(map[string]json.RawMessage)
	if err := json.Unmarshal(objectOrEmpty(o.Content), &payload); err != nil {
		return nil, fmt.Errorf("content of %q node must be a JSON object: %w", o.Type, err)
	}
	delete(payload, "children")

	if len(o.Children) > 0 {
		children, err := json.Marshal(o.Children)
		if err != nil {
			return nil, err
		}
		payload["children"] = children
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %q payload: %w", o.Type, err)
	}

	typ, _ := json.Marshal(o.Type)
	object, _ := json.Marshal(ObjectBlock)

	return json.Marshal(map[string]json.RawMessage{
		"object": object,
		"type":   typ,
		o.Type:   body,
	})
}

// UnmarshalJSON используется на стороне хранилища для разбора входящих узлов
func (o *OutgoingNode) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to decode outgoing node: %w", err)
	}

	var typ string
	if raw, ok := fields["type"]; ok {
		if err := json.Unmarshal(raw, &typ); err != nil {
			return fmt.Errorf("failed to decode node type: %w", err)
		}
	}
	if typ == "" {
		return fmt.Errorf("outgoing node is missing type")
	}

	payload := make(map[string]json.RawMessage)
	if raw, ok := fields[typ]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("payload of %q node must be a JSON object: %w", typ, err)
		}
	}

	*o = OutgoingNode{Type: typ}

	if raw, ok := payload["children"]; ok {
		if err := json.Unmarshal(raw, &o.Children); err != nil {
			return fmt.Errorf("failed to decode children of %q node: %w", typ, err)
		}
		delete(payload, "children")
	}

	content, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	o.Content = content

	return nil
}

// Position позиция вставки для запроса append.
// Отсутствие позиции означает добавление в конец.
type Position struct {
	AfterBlock *BlockRef `json:"after_block,omitempty"`
	Type       string    `json:"type"`
}

// BlockRef ссылка на существующий узел
type BlockRef struct {
	ID string `json:"id"`
}

// Значения Position.Type
const (
	PositionStart      = "start"
	PositionAfterBlock = "after_block"
	PositionEnd        = "end"
)

// AppendChildrenRequest тело PATCH /v1/blocks/{id}/children
type AppendChildrenRequest struct {
	Position *Position     `json:"position,omitempty"`
	Children []OutgoingNode `json:"children"`
}

// AppendChildrenResponse ответ на append: упорядоченный набор соседей после вставки
type AppendChildrenResponse struct {
	Object  string `json:"object"`
	Results []Node `json:"results"`
}

// ListChildrenResponse одна страница прямых потомков контейнера
type ListChildrenResponse struct {
	NextCursor *string `json:"next_cursor"`
	Object     string  `json:"object"`
	Results    []Node  `json:"results"`
	HasMore    bool    `json:"has_more"`
}

// UpdateNodeRequest тело PATCH /v1/blocks/{id}: {T: {...}}
type UpdateNodeRequest struct {
	Content json.RawMessage
	Type    string
}

// MarshalJSON кодирует запрос обновления как объект с единственным ключом типа
func (u UpdateNodeRequest) MarshalJSON() ([]byte, error) {
	if u.Type == "" {
		return nil, fmt.Errorf("update request has empty type")
	}
	if IsReservedType(u.Type) {
		return nil, fmt.Errorf("node type %q collides with a reserved key", u.Type)
	}
	return json.Marshal(map[string]json.RawMessage{u.Type: objectOrEmpty(u.Content)})
}

// UnmarshalJSON ожидает ровно один ключ, который и является типом
func (u *UpdateNodeRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to decode update request: %w", err)
	}
	if len(fields) != 1 {
		return fmt.Errorf("update request must contain exactly one type key, got %d", len(fields))
	}
	for typ, content := range fields {
		u.Type = typ
		u.Content = content
	}
	return nil
}

// CreatePageRequest тело POST /v1/pages
type CreatePageRequest struct {
	Title    string `json:"title"`
	ParentID string `json:"parent_id,omitempty"`
}

// objectOrEmpty подставляет пустой объект вместо отсутствующего payload
func objectOrEmpty(content json.RawMessage) json.RawMessage {
	if len(content) == 0 || string(content) == "null" {
		return json.RawMessage("{}")
	}
	return content
}
