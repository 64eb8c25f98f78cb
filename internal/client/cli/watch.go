package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/iudanet/homeblocks/internal/client/blockfile"
)

const defaultDebounce = 500 * time.Millisecond

func (c *Cli) runWatch(ctx context.Context, args []string) error {
	fs := c.newFlagSet("watch")
	debounce := fs.Duration("debounce", defaultDebounce, "Wait this long after the last change before pushing")
	rest, err := parseArgs(fs, args, 2, "watch [--debounce DURATION] <id> <file>")
	if err != nil {
		return err
	}
	id, err := nodeID(rest[0])
	if err != nil {
		return err
	}
	if _, err := blockfile.FormatOf(rest[1]); err != nil {
		return err
	}
	path, err := filepath.Abs(rest[1])
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", rest[1], err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	// Следим за каталогом: редакторы часто заменяют файл через rename
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", filepath.Dir(path), err)
	}

	c.io.Printf("Watching %s, pushing into %s. Press Ctrl+C to stop.\n", path, id)
	c.logger.Info("Watching block file", "path", path, "container_id", id, "debounce", *debounce)

	return c.watchLoop(ctx, watcher.Events, watcher.Errors, path, *debounce, func() error {
		return c.pushFile(ctx, id, path)
	})
}

// watchLoop вызывает push после серии изменений path, выждав debounce с последнего события.
// Ошибки push не останавливают наблюдение.
func (c *Cli) watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	path string,
	debounce time.Duration,
	push func() error,
) error {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			c.io.Println("Stopped watching.")
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			c.logger.Warn("Watcher error", "error", err)

		case <-fire:
			fire = nil
			if err := push(); err != nil {
				c.logger.Error("Push after change failed", "path", path, "error", err)
				c.io.Printf("⚠️  Push failed: %v\n", err)
			}
		}
	}
}
