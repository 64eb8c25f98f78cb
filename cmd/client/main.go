package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/iudanet/homeblocks/internal/client/api"
	"github.com/iudanet/homeblocks/internal/client/blocktree"
	"github.com/iudanet/homeblocks/internal/client/cli"
	"github.com/iudanet/homeblocks/internal/client/iocli"
	"github.com/iudanet/homeblocks/internal/client/storage/boltdb"
	"github.com/iudanet/homeblocks/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const retryBackoff = 500 * time.Millisecond

func main() {
	os.Exit(run())
}

func run() int {
	cfg, args, err := config.Parse(os.Args[1:], os.Getenv, func() { cli.PrintUsage(os.Stderr) })
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cli.PrintUsage(os.Stdout)
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Show version and exit if requested
	if cfg.ShowVersion {
		printVersion()
		return 0
	}

	// Получаем команду
	if len(args) == 0 {
		cli.PrintUsage(os.Stderr)
		return 1
	}
	command := args[0]

	logger, closeLog := newLogger(cfg)
	defer closeLog()

	// Ctrl+C прерывает текущую операцию и останавливает watch
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Открываем BoltDB storage
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0700); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create database directory: %v\n", err)
		return 1
	}
	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	token, err := cli.ResolveToken(ctx, cfg, boltStorage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Создаем API клиент
	apiClient := api.NewClient(cfg.ServerURL, token,
		api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		api.WithLogger(logger),
		api.WithRetry(uint64(cfg.Retries), retryBackoff),
	)
	tree := blocktree.NewService(apiClient, logger, blocktree.WithPageSize(cfg.PageSize))

	app := cli.New(cfg, token, iocli.NewStdio(), apiClient, tree,
		boltStorage, boltStorage, boltStorage, logger)

	// Выполняем команду
	if err := app.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUnknownCommand) {
			cli.PrintUsage(os.Stderr)
		}
		return 1
	}
	return 0
}

// newLogger пишет в stderr либо, если задан --log-file, в файл с ротацией
func newLogger(cfg *config.Config) (*slog.Logger, func()) {
	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	var w io.Writer = rotator
	return slog.New(slog.NewJSONHandler(w, opts)), func() { _ = rotator.Close() }
}

func printVersion() {
	fmt.Printf("Homeblocks Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
