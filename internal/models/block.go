package models

import (
	"encoding/json"
	"time"
)

// Block представляет узел дерева документа в памяти.
// Content - payload, структура которого определяется Type (размеченное объединение).
//
// Children == nil означает, что у блока нет поля children вовсе.
// Пустой, но не nil срез означает контейнер, у которого нет (отфильтрованных) потомков.
// JSON кодирует эти случаи как null и [] соответственно.
type Block struct {
	Content  json.RawMessage `json:"content,omitempty"`
	Type     string          `json:"type"`
	RemoteID string          `json:"remote_id,omitempty"`
	Children []Block         `json:"children"`
}

// HasChildrenField сообщает, присвоено ли поле Children
func (b Block) HasChildrenField() bool {
	return b.Children != nil
}

// Clone создает глубокую копию блока
func (b Block) Clone() Block {
	clone := Block{
		Type:     b.Type,
		RemoteID: b.RemoteID,
	}
	if b.Content != nil {
		clone.Content = make(json.RawMessage, len(b.Content))
		copy(clone.Content, b.Content)
	}
	if b.Children != nil {
		clone.Children = make([]Block, len(b.Children))
		for i, child := range b.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return clone
}

// CountBlocks возвращает общее количество блоков в списке, включая всех потомков
func CountBlocks(blocks []Block) int {
	total := 0
	for _, b := range blocks {
		total += 1 + CountBlocks(b.Children)
	}
	return total
}

// StripRemoteIDs возвращает копию дерева без RemoteID.
// Используется при записи прочитанного дерева в другой контейнер.
func StripRemoteIDs(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
		out[i].RemoteID = ""
		out[i].Children = StripRemoteIDs(b.Children)
	}
	return out
}

// Snapshot представляет сохранённую локально копию поддерева.
type Snapshot struct {
	TakenAt     time.Time `json:"taken_at"`
	ID          string    `json:"id"`
	ContainerID string    `json:"container_id"`
	Blocks      []Block   `json:"blocks"`
	BlockCount  int       `json:"block_count"`
}
