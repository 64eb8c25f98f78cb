package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/homeblocks/internal/server"
	"github.com/iudanet/homeblocks/internal/server/jwt"
	"github.com/iudanet/homeblocks/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse flags
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", envOr("HOMEBLOCKS_SANDBOX_ADDR", ":8080"), "HTTP listen address")
	dbPath := flag.String("db", envOr("HOMEBLOCKS_SANDBOX_DB", "homeblocks-sandbox.db"), "Path to SQLite database")
	secret := flag.String("secret", os.Getenv("HOMEBLOCKS_SANDBOX_SECRET"), "Secret for signing integration tokens")
	tokenTTL := flag.Duration("token-ttl", 0, "Lifetime of issued tokens (0 = no expiration)")
	issueToken := flag.String("issue-token", "", "Print an integration token for the workspace and exit")
	rateLimit := flag.Int("rate-limit", 3, "Requests per second per workspace (0 disables)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		return 0
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q\n", *logLevel)
		return 1
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "Error: --secret or HOMEBLOCKS_SANDBOX_SECRET is required")
		return 1
	}
	tokens := jwt.NewService(*secret, *tokenTTL)

	if *issueToken != "" {
		token, err := tokens.Issue(*issueToken)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Println(token)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, *dbPath)
	if err != nil {
		logger.Error("Failed to open database", "path", *dbPath, "error", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	srv := server.New(server.Config{
		Addr:            *addr,
		Version:         Version,
		RateLimit:       *rateLimit,
		RateWindow:      time.Second,
		ShutdownTimeout: 10 * time.Second,
	}, store, tokens, logger)

	logger.Info("Homeblocks sandbox starting", "version", Version, "db", *dbPath)
	if err := srv.Run(ctx); err != nil {
		logger.Error("Sandbox server stopped with error", "error", err)
		return 1
	}
	logger.Info("Sandbox server stopped")
	return 0
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printVersion() {
	fmt.Printf("Homeblocks Sandbox Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
