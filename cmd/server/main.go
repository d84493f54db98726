package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/iconidentify/scriptforge/internal/api"
	"github.com/iconidentify/scriptforge/internal/api/handler"
	"github.com/iconidentify/scriptforge/internal/config"
	"github.com/iconidentify/scriptforge/internal/llm/provider"
	"github.com/iconidentify/scriptforge/internal/metrics"
	"github.com/iconidentify/scriptforge/internal/repository"
	"github.com/iconidentify/scriptforge/internal/search"
	"github.com/iconidentify/scriptforge/internal/service"
	"github.com/iconidentify/scriptforge/pkg/serpapi"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	envFile := flag.String("env-file", ".env", "Path to a .env file (ignored when missing)")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("scriptforge %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// A missing .env is normal in containers
	_ = godotenv.Load(*envFile)

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("starting scriptforge",
		"version", Version,
		"build_time", BuildTime,
		"llm_provider", cfg.LLM.Provider,
		"llm_model", cfg.LLM.Model,
		"storage", cfg.Storage.Driver,
	)

	ctx := context.Background()
	m := metrics.New()

	// Initialize dependencies
	store, dataPath, err := openStore(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	llmClient, err := provider.New(cfg.LLM, m)
	if err != nil {
		logger.Error("failed to create llm client", "error", err)
		os.Exit(1)
	}

	searcher, closeSearch := newSearchClient(ctx, cfg.Search, m, logger)
	defer closeSearch()

	// Initialize services
	opts := service.GenerationOptionsFrom(cfg.LLM)
	scriptSvc := service.NewScriptService(llmClient, store, opts, logger)
	researchSvc := service.NewResearchService(llmClient, searcher, opts, logger)
	historySvc := service.NewHistoryService(store, logger)
	brandSvc := service.NewBrandService(store, logger)
	actions := service.NewActionRouter(scriptSvc, researchSvc, m, logger)

	if err := brandSvc.SeedDefaults(ctx); err != nil {
		logger.Warn("failed to seed default brands", "error", err)
	}

	// Initialize handlers
	router := api.NewRouter(api.Handlers{
		Action:  handler.NewActionHandler(actions, logger),
		History: handler.NewHistoryHandler(historySvc, logger),
		Brand:   handler.NewBrandHandler(brandSvc, logger),
		Health: handler.NewHealthHandler(store, dataPath, handler.Features{
			Search:      searcher != nil,
			SearchCache: searcher != nil && cfg.Search.Cache.Enabled(),
			Storage:     cfg.Storage.Driver,
			LLMProvider: cfg.LLM.Provider,
			LLMModel:    cfg.LLM.Model,
		}),
		Metrics: m.Handler(),
	}, api.Options{
		APIKey:         cfg.Server.APIKey,
		RequestTimeout: cfg.Server.RequestTimeout,
		HTTPObserver:   m,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "address", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}

// openStore opens the configured store. dataPath is the SQLite directory,
// empty for Postgres.
func openStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (repository.Store, string, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := repository.OpenPostgres(ctx, cfg.PostgresURL, cfg.MaxConns)
		if err != nil {
			return nil, "", err
		}
		if err := repository.MigratePostgres(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, "", err
		}
		return repository.NewPostgresStore(pool), "", nil

	default:
		dir := filepath.Dir(cfg.SQLitePath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, "", fmt.Errorf("create data directory: %w", err)
		}
		store, err := repository.NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, "", err
		}
		logger.Info("opened sqlite store", "path", cfg.SQLitePath)
		return store, dir, nil
	}
}

// newSearchClient returns nil when no search key is configured. The
// returned func releases the cache connection.
func newSearchClient(ctx context.Context, cfg config.SearchConfig, m *metrics.Metrics, logger *slog.Logger) (search.SearchClient, func()) {
	noop := func() {}
	if cfg.APIKey == "" {
		logger.Warn("SERPAPI_API_KEY not set, research-content is disabled")
		return nil, noop
	}

	var client search.SearchClient = serpapi.NewClient(cfg)
	if !cfg.Cache.Enabled() {
		return client, noop
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	cache := search.NewRedisStore(rdb)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		// The cache is bypassed on errors, so keep it and let redis reconnect.
		logger.Warn("search cache unreachable", "addr", cfg.Cache.RedisAddr, "error", err)
	}

	logger.Info("search cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
	return search.NewCachedClient(client, cache, cfg.Cache.TTL, logger, m), func() { rdb.Close() }
}
