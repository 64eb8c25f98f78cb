// Package blockfile читает и пишет деревья блоков в файлах JSON и YAML.
package blockfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iudanet/homeblocks/internal/models"
)

// Format формат файла блоков
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	// ErrUnknownFormat is returned for files without a .json, .yaml or .yml extension
	ErrUnknownFormat = errors.New("unknown block file format")
	// ErrInvalidBlock is returned when a block in the file has no type
	ErrInvalidBlock = errors.New("invalid block")
)

// FormatOf определяет формат по расширению файла
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Load читает список блоков из файла
func Load(path string) ([]models.Block, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open block file: %w", err)
	}
	defer f.Close()

	blocks, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return blocks, nil
}

// Save записывает список блоков в файл, формат определяется расширением
func Save(path string, blocks []models.Block) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, format, blocks); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write block file: %w", err)
	}
	return nil
}

// Decode читает список блоков.
// Отсутствующий ключ children даёт блок без потомков (nil), children: [] - пустой контейнер.
func Decode(r io.Reader, format Format) ([]models.Block, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read block file: %w", err)
	}

	if format == FormatYAML {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
		if data, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("failed to convert yaml: %w", err)
		}
	} else if format != FormatJSON {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	var blocks []models.Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("failed to decode blocks: %w", err)
	}

	if err := validate(blocks, ""); err != nil {
		return nil, err
	}
	if blocks == nil {
		blocks = []models.Block{}
	}
	return blocks, nil
}

// Encode записывает список блоков в w
func Encode(w io.Writer, format Format, blocks []models.Block) error {
	if blocks == nil {
		blocks = []models.Block{}
	}

	data, err := json.MarshalIndent(blocks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode blocks: %w", err)
	}

	switch format {
	case FormatJSON:
		data = append(data, '\n')
	case FormatYAML:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var doc any
		if err := dec.Decode(&doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		dropNullChildren(doc)
		if data, err = yaml.Marshal(keepNumbers(doc)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write blocks: %w", err)
	}
	return nil
}

// dropNullChildren убирает children: null, чтобы YAML не засорялся пустыми ключами
func dropNullChildren(doc any) {
	list, ok := doc.([]any)
	if !ok {
		return
	}
	for _, item := range list {
		block, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if children, exists := block["children"]; exists && children == nil {
			delete(block, "children")
			continue
		}
		dropNullChildren(block["children"])
	}
}

// keepNumbers заменяет json.Number скаляром YAML с исходной записью числа,
// чтобы большие целые не проходили через float64.
func keepNumbers(v any) any {
	switch v := v.(type) {
	case json.Number:
		tag := "!!float"
		if _, err := v.Int64(); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String()}
	case []any:
		for i := range v {
			v[i] = keepNumbers(v[i])
		}
	case map[string]any:
		for k := range v {
			v[k] = keepNumbers(v[k])
		}
	}
	return v
}

func validate(blocks []models.Block, path string) error {
	for i, b := range blocks {
		at := fmt.Sprintf("%s%d", path, i)
		if b.Type == "" {
			return fmt.Errorf("%w at %s: missing type", ErrInvalidBlock, at)
		}
		if len(b.Content) > 0 && b.Content[0] != '{' {
			return fmt.Errorf("%w at %s: content must be an object", ErrInvalidBlock, at)
		}
		if err := validate(b.Children, at+"."); err != nil {
			return err
		}
	}
	return nil
}
