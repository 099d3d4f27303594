package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cjliu2003/writersroom-sub009/internal/client/api"
	"github.com/cjliu2003/writersroom-sub009/internal/client/auth"
	"github.com/cjliu2003/writersroom-sub009/internal/client/cli"
	"github.com/cjliu2003/writersroom-sub009/internal/client/connectivity"
	"github.com/cjliu2003/writersroom-sub009/internal/client/data"
	"github.com/cjliu2003/writersroom-sub009/internal/client/iocli"
	"github.com/cjliu2003/writersroom-sub009/internal/client/storage/boltdb"
	"github.com/cjliu2003/writersroom-sub009/internal/client/sync"
	"github.com/cjliu2003/writersroom-sub009/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Path to config file")
	serverURL := flag.String("server", "", "Server URL (overrides config)")
	dbPath := flag.String("db", "", "Path to local database (overrides config)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	stdio := iocli.NewStdio()

	args := flag.Args()
	if len(args) == 0 {
		cli.New(stdio, nil, nil, nil, nil, nil).PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	if command == "init-config" {
		if err := config.Init(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		stdio.Println("✓ Config file written.")
		return
	}

	cfg, cfgPath, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config %s: %v\n", cfgPath, err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.URL = *serverURL
	}
	if *dbPath != "" {
		cfg.Storage.DBPath = *dbPath
	}

	logger := newLogger(cfg.Log.Level)

	// SIGINT stops long-running commands (watch) gracefully.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	boltStorage, err := boltdb.New(ctx, cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(cfg.Server.URL)
	authService := auth.NewService(apiClient, boltStorage, logger)
	docService := data.NewService(apiClient, authService, boltStorage, boltStorage, logger)

	clock := sync.NewClock()
	manager := sync.NewManager(apiClient, boltStorage, authService, clock, logger, sync.Config{
		DebounceInterval: cfg.Sync.Debounce(),
		MaxWait:          cfg.Sync.MaxWait(),
		MaxRetries:       cfg.Sync.MaxRetries,
		QueueMaxRetries:  cfg.Sync.QueueMaxRetries,
	})
	defer manager.CloseAll()

	prober := connectivity.NewProber(apiClient, clock, logger, cfg.Sync.ProbeInterval())

	c := cli.New(stdio, authService, docService, boltStorage, manager, prober)
	if err := c.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func printVersion() {
	fmt.Printf("Writersroom Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
