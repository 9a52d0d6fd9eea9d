package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/loreforge/loreforge/internal/client/api"
	"github.com/loreforge/loreforge/internal/client/auth"
	"github.com/loreforge/loreforge/internal/client/cli"
	"github.com/loreforge/loreforge/internal/client/data"
	"github.com/loreforge/loreforge/internal/client/iocli"
	"github.com/loreforge/loreforge/internal/client/storage/boltdb"
	"github.com/loreforge/loreforge/internal/client/sync"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "loreforge.db", "Path to local database")
	projectID := flag.String("project", "default", "Project to operate on")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	io := iocli.NewStdio()

	args := flag.Args()
	if len(args) == 0 {
		cli.New(io, nil, nil, nil, *projectID).PrintUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(*serverURL)

	authService := auth.NewService(apiClient, boltStorage, logger)
	dataService := data.NewService(boltStorage, boltStorage, boltStorage)
	syncService := sync.NewService(apiClient, boltStorage, boltStorage, boltStorage, boltStorage, logger)

	app := cli.New(io, authService, dataService, syncService, *projectID)
	if err := app.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("Loreforge Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
