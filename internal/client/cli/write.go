package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/homeblocks/internal/client/blockfile"
	"github.com/iudanet/homeblocks/internal/models"
)

func (c *Cli) runImport(ctx context.Context, args []string) error {
	fs := c.newFlagSet("import")
	anchorOpts := addAnchorFlags(fs)
	rest, err := parseArgs(fs, args, 2, "import [--after ID|--start] <id> <file>")
	if err != nil {
		return err
	}
	anchor, err := anchorOpts.anchor()
	if err != nil {
		return err
	}
	id, err := nodeID(rest[0])
	if err != nil {
		return err
	}

	blocks, err := blockfile.Load(rest[1])
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		c.io.Println("File contains no blocks, nothing to import.")
		return nil
	}

	result, err := c.tree.WriteTree(ctx, id, blocks, anchor)
	if err != nil {
		if result != nil && result.Appended > 0 {
			c.io.Printf("⚠️  Import stopped after %d block(s)\n", result.Appended)
		}
		return fmt.Errorf("import failed: %w", err)
	}

	c.io.Printf("✓ Imported %d block(s) from %s\n", models.CountBlocks(blocks), rest[1])
	c.printWriteResult(result)
	return nil
}

func (c *Cli) runPush(ctx context.Context, args []string) error {
	fs := c.newFlagSet("push")
	yes := fs.Bool("yes", false, "Do not ask for confirmation")
	rest, err := parseArgs(fs, args, 2, "push [--yes] <id> <file>")
	if err != nil {
		return err
	}
	id, err := nodeID(rest[0])
	if err != nil {
		return err
	}

	if !*yes {
		ok, err := c.io.Confirm(fmt.Sprintf("All children of %s will be replaced. Continue?", id))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			c.io.Println("Cancelled.")
			return nil
		}
	}

	return c.pushFile(ctx, id, rest[1])
}

// pushFile заменяет потомков id содержимым файла и запоминает время отправки
func (c *Cli) pushFile(ctx context.Context, id, path string) error {
	blocks, err := blockfile.Load(path)
	if err != nil {
		return err
	}

	result, err := c.tree.ReplaceChildren(ctx, id, blocks)
	if err != nil {
		return fmt.Errorf("push failed: %w", err)
	}

	if err := c.metadata.SaveLastPush(ctx, id, c.now().Unix()); err != nil {
		c.logger.Warn("Failed to save last push time", "container_id", id, "error", err)
	}

	c.io.Printf("✓ Pushed %s into %s\n", path, id)
	c.printWriteResult(result)
	return nil
}

func (c *Cli) runUpdate(ctx context.Context, args []string) error {
	rest, err := parseArgs(c.newFlagSet("update"), args, 2, "update <id> <file>")
	if err != nil {
		return err
	}
	id, err := nodeID(rest[0])
	if err != nil {
		return err
	}

	blocks, err := blockfile.Load(rest[1])
	if err != nil {
		return err
	}
	if len(blocks) != 1 {
		return fmt.Errorf("update expects exactly one block in %s, found %d", rest[1], len(blocks))
	}
	if blocks[0].Children != nil {
		c.io.Println("Note: children in the file are ignored by update.")
	}

	if err := c.tree.Update(ctx, id, blocks[0]); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	c.io.Printf("✓ Block %s updated\n", id)
	return nil
}

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	fs := c.newFlagSet("delete")
	yes := fs.Bool("yes", false, "Do not ask for confirmation")
	rest, err := parseArgs(fs, args, 1, "delete [--yes] <id>")
	if err != nil {
		return err
	}
	id, err := nodeID(rest[0])
	if err != nil {
		return err
	}

	if !*yes {
		ok, err := c.io.Confirm(fmt.Sprintf("Delete block %s with all nested blocks?", id))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			c.io.Println("Cancelled.")
			return nil
		}
	}

	if err := c.tree.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	c.io.Printf("✓ Block %s deleted\n", id)
	return nil
}
