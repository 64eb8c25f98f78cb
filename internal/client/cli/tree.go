package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/homeblocks/internal/client/blockfile"
	"github.com/iudanet/homeblocks/internal/models"
)

func (c *Cli) runTree(ctx context.Context, args []string) error {
	fs := c.newFlagSet("tree")
	filterName := fs.String("filter", "", "Skip blocks: nonempty drops blocks without text")
	rest, err := parseArgs(fs, args, 1, "tree [--filter nonempty] <id>")
	if err != nil {
		return err
	}

	blocks, err := c.readTree(ctx, rest[0], *filterName)
	if err != nil {
		return err
	}

	if len(blocks) == 0 {
		c.io.Println("No blocks found.")
		return nil
	}
	c.printTree(blocks, 0)
	c.io.Println()
	c.io.Printf("Total: %d block(s)\n", models.CountBlocks(blocks))
	return nil
}

func (c *Cli) runExport(ctx context.Context, args []string) error {
	fs := c.newFlagSet("export")
	filterName := fs.String("filter", "", "Skip blocks: nonempty drops blocks without text")
	rest, err := parseArgs(fs, args, 2, "export [--filter nonempty] <id> <file>")
	if err != nil {
		return err
	}
	if _, err := blockfile.FormatOf(rest[1]); err != nil {
		return err
	}

	blocks, err := c.readTree(ctx, rest[0], *filterName)
	if err != nil {
		return err
	}

	if err := blockfile.Save(rest[1], blocks); err != nil {
		return err
	}

	c.io.Printf("✓ Exported %d block(s) to %s\n", models.CountBlocks(blocks), rest[1])
	return nil
}

func (c *Cli) readTree(ctx context.Context, arg, filterName string) ([]models.Block, error) {
	id, err := nodeID(arg)
	if err != nil {
		return nil, err
	}
	filter, err := filterByName(filterName)
	if err != nil {
		return nil, err
	}

	blocks, err := c.tree.ReadTree(ctx, id, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to read block tree: %w", err)
	}
	return blocks, nil
}
