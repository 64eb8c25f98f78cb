package blockfile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/homeblocks/internal/models"
)

func sampleBlocks() []models.Block {
	return []models.Block{
		{
			Type:    "toggle",
			Content: json.RawMessage(`{"text":"parent"}`),
			Children: []models.Block{
				{Type: "paragraph", Content: json.RawMessage(`{"text":"child"}`)},
			},
		},
		{Type: "column_list", Children: []models.Block{}},
		{Type: "divider"},
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "tree.json", want: FormatJSON},
		{path: "TREE.JSON", want: FormatJSON},
		{path: "tree.yaml", want: FormatYAML},
		{path: "dir/tree.yml", want: FormatYAML},
		{path: "tree.txt", wantErr: true},
		{path: "tree", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	for _, name := range []string{"tree.json", "tree.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Save(path, sampleBlocks()))

			got, err := Load(path)
			require.NoError(t, err)
			require.Len(t, got, 3)

			assert.Equal(t, "toggle", got[0].Type)
			assert.JSONEq(t, `{"text":"parent"}`, string(got[0].Content))
			require.Len(t, got[0].Children, 1)
			assert.Nil(t, got[0].Children[0].Children)

			// пустой контейнер и блок без потомков различаются
			assert.NotNil(t, got[1].Children)
			assert.Empty(t, got[1].Children)
			assert.Nil(t, got[2].Children)
		})
	}
}

func TestDecode_YAML(t *testing.T) {
	input := `
- type: heading_1
  content:
    text: Title
- type: bulleted_list_item
  content:
    text: item
    checked: true
  children:
    - type: paragraph
      content:
        text: nested
- type: toggle
  children: []
`
	got, err := Decode(strings.NewReader(input), FormatYAML)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.JSONEq(t, `{"text":"Title"}`, string(got[0].Content))
	assert.Nil(t, got[0].Children)
	assert.JSONEq(t, `{"text":"item","checked":true}`, string(got[1].Content))
	require.Len(t, got[1].Children, 1)
	assert.Equal(t, "paragraph", got[1].Children[0].Type)
	assert.NotNil(t, got[2].Children)
	assert.Empty(t, got[2].Children)
}

func TestEncode_YAMLOmitsNullChildren(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatYAML, sampleBlocks()))

	out := buf.String()
	assert.NotContains(t, out, "children: null")
	assert.Contains(t, out, "children: []")
	assert.Contains(t, out, "type: divider")
}

func TestEncode_YAMLKeepsNumbers(t *testing.T) {
	content := `{"big":9007199254740993,"neg":-12,"ratio":0.25}`
	blocks := []models.Block{{Type: "paragraph", Content: json.RawMessage(content)}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatYAML, blocks))
	assert.Contains(t, buf.String(), "big: 9007199254740993")
	assert.NotContains(t, buf.String(), "e+15")

	got, err := Decode(&buf, FormatYAML)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, `{"big":9007199254740993,"neg":-12,"ratio":0.25}`, string(got[0].Content))
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		target error
	}{
		{name: "missing type", input: `[{"content":{"text":"x"}}]`, format: FormatJSON, target: ErrInvalidBlock},
		{name: "nested missing type", input: `[{"type":"toggle","children":[{"type":""}]}]`, format: FormatJSON, target: ErrInvalidBlock},
		{name: "content not an object", input: `[{"type":"paragraph","content":"text"}]`, format: FormatJSON, target: ErrInvalidBlock},
		{name: "unknown format", input: `[]`, format: Format("xml"), target: ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	_, err := Decode(strings.NewReader(`{not json`), FormatJSON)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("- type: [unclosed"), FormatYAML)
	assert.Error(t, err)
}

func TestDecode_Empty(t *testing.T) {
	got, err := Decode(strings.NewReader(`[]`), FormatJSON)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
