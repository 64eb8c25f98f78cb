package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/iudanet/homeblocks/internal/client/api"
	"github.com/iudanet/homeblocks/internal/client/blocktree"
	"github.com/iudanet/homeblocks/internal/client/iocli"
	"github.com/iudanet/homeblocks/internal/client/storage"
	"github.com/iudanet/homeblocks/internal/config"
)

var (
	// ErrNotAuthenticated is returned by commands that need a token when none is configured
	ErrNotAuthenticated = errors.New("not authenticated. Please run 'homeblocks login' first")
	// ErrUsage is returned when command arguments are wrong
	ErrUsage = errors.New("usage")
	// ErrUnknownCommand is returned for commands Run does not know
	ErrUnknownCommand = errors.New("unknown command")
)

type Cli struct {
	io        iocli.IO
	remote    api.ClientAPI
	tree      blocktree.Service
	auth      storage.AuthStorage
	snapshots storage.SnapshotStorage
	metadata  storage.MetadataStorage
	logger    *slog.Logger
	cfg       *config.Config
	now       func() time.Time
	token     string
}

// New создаёт CLI. token - уже разрешённый integration token, пустой если его нет.
func New(
	cfg *config.Config,
	token string,
	stdio iocli.IO,
	remote api.ClientAPI,
	tree blocktree.Service,
	auth storage.AuthStorage,
	snapshots storage.SnapshotStorage,
	metadata storage.MetadataStorage,
	logger *slog.Logger,
) *Cli {
	return &Cli{
		io:        stdio,
		remote:    remote,
		tree:      tree,
		auth:      auth,
		snapshots: snapshots,
		metadata:  metadata,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
		token:     token,
	}
}

// Run выполняет команду
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	}

	if c.token == "" {
		if _, known := remoteCommands[command]; known {
			return ErrNotAuthenticated
		}
	}

	switch command {
	case "init-page":
		return c.runInitPage(ctx, args)
	case "get":
		return c.runGet(ctx, args)
	case "tree":
		return c.runTree(ctx, args)
	case "export":
		return c.runExport(ctx, args)
	case "import":
		return c.runImport(ctx, args)
	case "push":
		return c.runPush(ctx, args)
	case "update":
		return c.runUpdate(ctx, args)
	case "delete":
		return c.runDelete(ctx, args)
	case "snapshot":
		return c.runSnapshot(ctx, args)
	case "snapshots":
		return c.runSnapshots(ctx)
	case "restore":
		return c.runRestore(ctx, args)
	case "watch":
		return c.runWatch(ctx, args)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// команды, которым нужен доступ к хранилищу документов
var remoteCommands = map[string]struct{}{
	"init-page": {},
	"get":       {},
	"tree":      {},
	"export":    {},
	"import":    {},
	"push":      {},
	"update":    {},
	"delete":    {},
	"snapshot":  {},
	"restore":   {},
	"watch":     {},
}

// ResolveToken retrieves integration token from various sources with priority:
// 1. --token flag, HOMEBLOCKS_TOKEN or token in config file (already merged in cfg)
// 2. File specified in --token-file
// 3. Token saved by 'homeblocks login' for cfg.ServerURL
// Returns empty string if no token is available.
func ResolveToken(ctx context.Context, cfg *config.Config, auth storage.AuthStorage) (string, error) {
	// Priority 1: config
	if cfg.Token != "" {
		return cfg.Token, nil
	}

	// Priority 2: File
	if cfg.TokenFile != "" {
		return readTokenFile(cfg.TokenFile)
	}

	// Priority 3: local storage
	data, err := auth.GetAuth(ctx, cfg.ServerURL)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get auth data: %w", err)
	}
	if data.Expired(time.Now().Unix()) {
		return "", fmt.Errorf("stored token for %s has expired. Please run 'homeblocks login' again", cfg.ServerURL)
	}
	return data.Token, nil
}

func readTokenFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	// Убираем trailing newline/whitespace
	token := strings.TrimSpace(string(content))
	if token == "" {
		return "", fmt.Errorf("token file is empty")
	}
	return token, nil
}

func PrintUsage(w io.Writer) {
	fmt.Fprint(w, `Homeblocks - block tree synchronization client

Usage:
  homeblocks [OPTIONS] COMMAND [ARGS]

Options:
  --version              Show version information
  --config PATH          TOML config file (default: ~/.homeblocks/config.toml)
  --server URL           Document store URL (default: http://localhost:8080)
  --token TOKEN          Integration token (not recommended, use env var or file)
  --token-file PATH      Path to file containing integration token
  --db PATH              Path to local database (default: ~/.homeblocks/client.db)
  --log-file PATH        Write logs to a rotating file instead of stderr
  --log-level LEVEL      debug, info, warn, error (default: info)
  --page-size N          Page size for reading children, 1-100 (default: 100)
  --retries N            Retries for rate limited requests (default: 3)
  --timeout DURATION     HTTP request timeout (default: 30s)

Settings priority (highest to lowest):
  1. Command line options
  2. HOMEBLOCKS_* environment variables (HOMEBLOCKS_SERVER, HOMEBLOCKS_TOKEN, ...)
  3. Config file
  4. Defaults

Commands:
  login                                  Save integration token locally
  logout                                 Delete saved token
  status                                 Show authentication status
  init-page [--parent ID] <title>        Create a new page
  get <id>                               Show a single block
  tree [--filter nonempty] <id>          Print the block tree under id
  export [--filter nonempty] <id> <file> Save the block tree to a .json/.yaml file
  import [--after ID|--start] <id> <file>
                                         Append blocks from file into id
  push [--yes] <id> <file>               Replace children of id with blocks from file
  update <id> <file>                     Replace content of a block with the single block in file
  delete [--yes] <id>                    Delete a block with its subtree
  snapshot <id>                          Save the block tree under id locally
  snapshots                              List local snapshots
  restore [--after ID|--start] <snapshot-id> <id>
                                         Write a snapshot into id
  watch [--debounce DURATION] <id> <file>
                                         Push file into id every time it changes

Examples:
  export HOMEBLOCKS_TOKEN='secret'
  homeblocks tree --filter nonempty b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5
  homeblocks import --after 1f0c2d88-4aa1-a9e1-13aa-6e4976d5b692 b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5 notes.yaml
  homeblocks --server https://docs.example.com login
`)
}
