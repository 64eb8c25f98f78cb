package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/iudanet/homeblocks/internal/client/blocktree"
	"github.com/iudanet/homeblocks/internal/models"
	"github.com/iudanet/homeblocks/internal/validation"
)

// newFlagSet создаёт набор флагов команды, ошибки разбора печатаются через io
func (c *Cli) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.io)
	return fs
}

// parseArgs разбирает флаги команды и проверяет число позиционных аргументов
func parseArgs(fs *flag.FlagSet, args []string, want int, usage string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: homeblocks %s", ErrUsage, usage)
	}
	if fs.NArg() != want {
		return nil, fmt.Errorf("%w: homeblocks %s", ErrUsage, usage)
	}
	return fs.Args(), nil
}

// nodeID проверяет id из аргументов и приводит его к каноническому виду
func nodeID(arg string) (string, error) {
	if err := validation.ValidateNodeID(arg); err != nil {
		return "", err
	}
	return validation.CanonicalNodeID(arg)
}

type anchorFlags struct {
	after string
	start bool
}

func addAnchorFlags(fs *flag.FlagSet) *anchorFlags {
	a := &anchorFlags{}
	fs.StringVar(&a.after, "after", "", "Insert after the block with this id")
	fs.BoolVar(&a.start, "start", false, "Insert at the start of the container")
	return a
}

func (a *anchorFlags) anchor() (blocktree.Anchor, error) {
	switch {
	case a.after != "" && a.start:
		return blocktree.Anchor{}, errors.New("--after and --start are mutually exclusive")
	case a.start:
		return blocktree.AtStart(), nil
	case a.after != "":
		id, err := nodeID(a.after)
		if err != nil {
			return blocktree.Anchor{}, err
		}
		return blocktree.After(id), nil
	default:
		return blocktree.AtEnd(), nil
	}
}

// filterByName возвращает фильтр чтения по имени из --filter
func filterByName(name string) (blocktree.Filter, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "nonempty":
		return blocktree.NonEmptyText, nil
	default:
		return nil, fmt.Errorf("unknown filter %q (supported: nonempty)", name)
	}
}

// blockText извлекает видимый текст блока для вывода в терминал
func blockText(b models.Block) string {
	if len(b.Content) == 0 {
		return ""
	}
	var payload struct {
		Text     string `json:"text"`
		Title    string `json:"title"`
		RichText []struct {
			PlainText string `json:"plain_text"`
		} `json:"rich_text"`
	}
	if err := json.Unmarshal(b.Content, &payload); err != nil {
		return ""
	}

	switch {
	case payload.Text != "":
		return payload.Text
	case len(payload.RichText) > 0:
		parts := make([]string, 0, len(payload.RichText))
		for _, rt := range payload.RichText {
			parts = append(parts, rt.PlainText)
		}
		return strings.Join(parts, "")
	default:
		return payload.Title
	}
}

const maxSummaryLen = 60

func blockSummary(b models.Block) string {
	text := strings.Join(strings.Fields(blockText(b)), " ")
	if r := []rune(text); len(r) > maxSummaryLen {
		text = string(r[:maxSummaryLen-1]) + "…"
	}
	line := b.Type
	if text != "" {
		line += fmt.Sprintf(" %q", text)
	}
	if b.RemoteID != "" {
		line += "  [" + b.RemoteID + "]"
	}
	return line
}

// printTree печатает дерево с отступом в два пробела на уровень
func (c *Cli) printTree(blocks []models.Block, level int) {
	for _, b := range blocks {
		c.io.Printf("%s- %s\n", strings.Repeat("  ", level), blockSummary(b))
		c.printTree(b.Children, level+1)
	}
}

func (c *Cli) printWriteResult(result *blocktree.WriteResult) {
	c.io.Printf("Appended blocks: %d (%d calls, %s strategy)\n",
		result.Appended, result.AppendCalls, result.Strategy)
	if result.Deleted > 0 {
		c.io.Printf("Deleted blocks:  %d\n", result.Deleted)
	}
	if result.LastID != "" {
		c.io.Printf("Last block id:   %s\n", result.LastID)
	}
}
