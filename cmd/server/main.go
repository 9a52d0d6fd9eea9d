package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loreforge/loreforge/internal/server/handlers"
	"github.com/loreforge/loreforge/internal/server/middleware"
	"github.com/loreforge/loreforge/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

const (
	accessTokenTTL       = 15 * time.Minute
	refreshTokenTTL      = 30 * 24 * time.Hour
	tokenCleanupInterval = time.Hour
	shutdownTimeout      = 10 * time.Second
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8080", "Listen address")
	dbPath := flag.String("db", "loreforge-server.db", "Path to sqlite database")
	jwtSecret := flag.String("jwt-secret", "", "JWT signing secret (or LOREFORGE_JWT_SECRET)")
	pageSize := flag.Int("page-size", handlers.DefaultPageSize, "Pull page size")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger, *addr, *dbPath, *jwtSecret, *pageSize); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, addr, dbPath, jwtSecret string, pageSize int) error {
	if jwtSecret == "" {
		jwtSecret = os.Getenv("LOREFORGE_JWT_SECRET")
	}
	if jwtSecret == "" {
		return fmt.Errorf("jwt secret is required (use -jwt-secret or LOREFORGE_JWT_SECRET)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	jwtConfig := handlers.JWTConfig{
		Secret:          []byte(jwtSecret),
		AccessTokenTTL:  accessTokenTTL,
		RefreshTokenTTL: refreshTokenTTL,
	}

	validator, err := handlers.NewPayloadValidator()
	if err != nil {
		return fmt.Errorf("failed to build payload validator: %w", err)
	}

	authHandler := handlers.NewAuthHandler(logger, store, store, jwtConfig)
	syncHandler := handlers.NewSyncHandler(logger, store, validator, pageSize)
	healthHandler := handlers.NewHealthHandler(logger, Version)

	requireAuth := middleware.AuthMiddleware(logger, jwtConfig)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("GET /api/v1/auth/salt/{username}", authHandler.GetSalt)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout)
	mux.Handle("GET /api/v1/sync/pull", requireAuth(http.HandlerFunc(syncHandler.Pull)))
	mux.Handle("POST /api/v1/sync/push", requireAuth(http.HandlerFunc(syncHandler.Push)))
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)

	// Credential endpoints are throttled much harder than sync traffic.
	rateLimits := []middleware.PathRateLimit{
		{Path: "/api/v1/auth/register", Rate: 10, Window: time.Minute},
		{Path: "/api/v1/auth/login", Rate: 10, Window: time.Minute},
	}

	var handler http.Handler = mux
	handler = middleware.RateLimitByPathMiddleware(rateLimits, 600, time.Minute, logger)(handler)
	handler = middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go cleanupExpiredTokens(ctx, logger, store)

	errC := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "version", Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// cleanupExpiredTokens periodically drops expired refresh tokens so the
// table does not grow without bound.
func cleanupExpiredTokens(ctx context.Context, logger *slog.Logger, store *sqlite.Storage) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := store.DeleteExpiredTokens(ctx)
			if err != nil {
				logger.Error("failed to delete expired tokens", "error", err)
				continue
			}
			if deleted > 0 {
				logger.Info("expired tokens removed", "count", deleted)
			}
		}
	}
}

func printVersion() {
	fmt.Printf("Loreforge Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
