package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mpautz/crossword-times/internal/api"
	"github.com/mpautz/crossword-times/internal/config"
	"github.com/mpautz/crossword-times/internal/factory"
	"github.com/mpautz/crossword-times/internal/ocr/ocrspace"
	"github.com/mpautz/crossword-times/internal/storage/postgres"
	redisstorage "github.com/mpautz/crossword-times/internal/storage/redis"
	"github.com/mpautz/crossword-times/internal/storage/supabase"
	"github.com/mpautz/crossword-times/internal/web"
)

func main() {
	// A .env file is optional; deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Read()
	if err != nil {
		slog.Error("failed to read configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Create application factory
	app, err := factory.New(factoryConfig(cfg, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Find static files directory
	staticDir := findStaticDir()

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		ExtractService:   app.ExtractService,
		RecordController: app.RecordController,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:           logger,
		ExtractService:   app.ExtractService,
		RecordController: app.RecordController,
		Roster:           app.Roster,
		StoreConfigured:  app.Storage != nil,
		OCRConfigured:    app.OCREngine != nil,
		StaticDir:        staticDir,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.Port
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// factoryConfig translates the environment configuration into factory wiring
func factoryConfig(cfg config.Config, logger *slog.Logger) factory.Config {
	fc := factory.Config{
		Logger:      logger,
		Roster:      cfg.Roster,
		StorageType: cfg.StorageType,
		OCRProvider: cfg.OCRProvider,
	}

	switch cfg.StorageType {
	case factory.StorageTypeSupabase:
		fc.SupabaseConfig = &supabase.Config{
			URL: cfg.SupabaseURL,
			Key: cfg.SupabaseKey,
		}
	case factory.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		if cfg.RedisURL != "" {
			redisCfg.URL = cfg.RedisURL
		}
		fc.RedisConfig = &redisCfg
	case factory.StorageTypePostgres:
		fc.PostgresConfig = &postgres.Config{DSN: cfg.DatabaseURL}
	}

	switch cfg.OCRProvider {
	case factory.OCRProviderOCRSpace, "":
		fc.OCRSpaceConfig = &ocrspace.Config{APIKey: cfg.OCRAPIKey}
	case factory.OCRProviderGemini:
		fc.GeminiAPIKey = cfg.GeminiAPIKey
	}

	return fc
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	// Try common locations
	candidates := []string{
		"internal/web/static",
		"./internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	// Default to relative path
	return "internal/web/static"
}
