package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/homeblocks/internal/client/storage"
	"github.com/iudanet/homeblocks/internal/models"
)

func (c *Cli) runSnapshot(ctx context.Context, args []string) error {
	rest, err := parseArgs(c.newFlagSet("snapshot"), args, 1, "snapshot <id>")
	if err != nil {
		return err
	}

	id, err := nodeID(rest[0])
	if err != nil {
		return err
	}

	blocks, err := c.readTree(ctx, id, "")
	if err != nil {
		return err
	}

	snapshot := &models.Snapshot{
		ContainerID: id,
		Blocks:      blocks,
		TakenAt:     c.now().UTC(),
	}
	if err := c.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	c.io.Println("✓ Snapshot saved")
	c.io.Printf("ID:     %s\n", snapshot.ID)
	c.io.Printf("Blocks: %d\n", snapshot.BlockCount)
	return nil
}

func (c *Cli) runSnapshots(ctx context.Context) error {
	snapshots, err := c.snapshots.ListSnapshots(ctx)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		c.io.Println("No snapshots found.")
		return nil
	}

	c.io.Printf("%-36s  %-20s  %-36s  %s\n", "ID", "TAKEN", "CONTAINER", "BLOCKS")
	for _, s := range snapshots {
		c.io.Printf("%-36s  %-20s  %-36s  %d\n",
			s.ID, s.TakenAt.Format("2006-01-02 15:04:05"), s.ContainerID, s.BlockCount)
	}
	c.io.Println()
	c.io.Printf("Total: %d snapshot(s)\n", len(snapshots))
	return nil
}

func (c *Cli) runRestore(ctx context.Context, args []string) error {
	fs := c.newFlagSet("restore")
	anchorOpts := addAnchorFlags(fs)
	rest, err := parseArgs(fs, args, 2, "restore [--after ID|--start] <snapshot-id> <id>")
	if err != nil {
		return err
	}
	anchor, err := anchorOpts.anchor()
	if err != nil {
		return err
	}
	target, err := nodeID(rest[1])
	if err != nil {
		return err
	}

	snapshot, err := c.snapshots.GetSnapshot(ctx, rest[0])
	if err != nil {
		if errors.Is(err, storage.ErrSnapshotNotFound) {
			return fmt.Errorf("snapshot not found with ID: %s", rest[0])
		}
		return fmt.Errorf("failed to get snapshot: %w", err)
	}

	result, err := c.tree.WriteTree(ctx, target, models.StripRemoteIDs(snapshot.Blocks), anchor)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	c.io.Printf("✓ Snapshot %s restored into %s\n", snapshot.ID, target)
	c.printWriteResult(result)
	return nil
}
