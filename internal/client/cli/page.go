package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/homeblocks/internal/client/blocktree"
	"github.com/iudanet/homeblocks/internal/validation"
	"github.com/iudanet/homeblocks/pkg/api"
)

func (c *Cli) runInitPage(ctx context.Context, args []string) error {
	fs := c.newFlagSet("init-page")
	parent := fs.String("parent", "", "Parent page id")
	if err := fs.Parse(args); err != nil || fs.NArg() == 0 {
		return fmt.Errorf("%w: homeblocks init-page [--parent ID] <title>", ErrUsage)
	}

	title := strings.Join(fs.Args(), " ")
	if err := validation.ValidatePageTitle(title); err != nil {
		return err
	}

	req := api.CreatePageRequest{Title: title}
	if *parent != "" {
		id, err := nodeID(*parent)
		if err != nil {
			return err
		}
		req.ParentID = id
	}

	page, err := c.remote.CreatePage(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}

	c.io.Println("✓ Page created")
	c.io.Printf("ID: %s\n", page.ID)
	return nil
}

func (c *Cli) runGet(ctx context.Context, args []string) error {
	rest, err := parseArgs(c.newFlagSet("get"), args, 1, "get <id>")
	if err != nil {
		return err
	}
	id, err := nodeID(rest[0])
	if err != nil {
		return err
	}

	node, err := c.remote.GetNode(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get block: %w", err)
	}

	block := blocktree.FromNode(*node)
	c.io.Printf("ID:           %s\n", node.ID)
	c.io.Printf("Type:         %s\n", node.Type)
	if node.ParentID != "" {
		c.io.Printf("Parent:       %s\n", node.ParentID)
	}
	c.io.Printf("Has children: %t\n", node.HasChildren)
	if !node.LastEditedTime.IsZero() {
		c.io.Printf("Last edited:  %s\n", node.LastEditedTime.Format("2006-01-02 15:04:05"))
	}
	if text := blockText(block); text != "" {
		c.io.Printf("Text:         %s\n", text)
	}
	c.io.Printf("Content:      %s\n", string(node.Content))
	return nil
}
