package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlock_JSON_ChildrenNilVsEmpty(t *testing.T) {
	blocks := []Block{
		{Type: "paragraph", Content: json.RawMessage(`{"text":"leaf"}`)},
		{Type: "toggle", Content: json.RawMessage(`{"text":"empty"}`), Children: []Block{}},
	}

	data, err := json.Marshal(blocks)
	require.NoError(t, err)

	var decoded []Block
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)

	// Лист без поля children остаётся nil
	assert.Nil(t, decoded[0].Children)
	assert.False(t, decoded[0].HasChildrenField())

	// Пустой контейнер остаётся пустым, но не nil
	assert.NotNil(t, decoded[1].Children)
	assert.Empty(t, decoded[1].Children)
	assert.True(t, decoded[1].HasChildrenField())
}

func TestBlock_Clone(t *testing.T) {
	original := Block{
		Type:     "toggle",
		RemoteID: "r1",
		Content:  json.RawMessage(`{"text":"a"}`),
		Children: []Block{
			{Type: "paragraph", Content: json.RawMessage(`{"text":"b"}`)},
		},
	}

	clone := original.Clone()
	assert.Equal(t, original, clone)

	// Изменение копии не затрагивает оригинал
	clone.Content[2] = 'X'
	clone.Children[0].Type = "heading_1"

	assert.Equal(t, `{"text":"a"}`, string(original.Content))
	assert.Equal(t, "paragraph", original.Children[0].Type)
}

func TestCountBlocks(t *testing.T) {
	blocks := []Block{
		{Type: "a"},
		{Type: "b", Children: []Block{
			{Type: "c", Children: []Block{{Type: "d"}}},
			{Type: "e"},
		}},
		{Type: "f", Children: []Block{}},
	}

	assert.Equal(t, 6, CountBlocks(blocks))
	assert.Equal(t, 0, CountBlocks(nil))
}

func TestStripRemoteIDs(t *testing.T) {
	blocks := []Block{
		{Type: "a", RemoteID: "1", Children: []Block{{Type: "b", RemoteID: "2"}}},
		{Type: "c", RemoteID: "3", Children: []Block{}},
	}

	stripped := StripRemoteIDs(blocks)

	require.Len(t, stripped, 2)
	assert.Empty(t, stripped[0].RemoteID)
	assert.Empty(t, stripped[0].Children[0].RemoteID)
	assert.NotNil(t, stripped[1].Children)
	assert.Equal(t, "1", blocks[0].RemoteID)
}
