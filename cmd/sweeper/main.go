package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/greenhollow/gh-game-core/internal/adapter"
	"github.com/greenhollow/gh-game-core/internal/config"
	"github.com/greenhollow/gh-game-core/internal/domain"
	"github.com/greenhollow/gh-game-core/internal/game"
	"github.com/greenhollow/gh-game-core/internal/ledger"
	"github.com/greenhollow/gh-game-core/internal/logger"
	"github.com/greenhollow/gh-game-core/internal/providers/jetstream"
	"github.com/greenhollow/gh-game-core/internal/ratelimit"
	"github.com/greenhollow/gh-game-core/internal/store"
	"github.com/greenhollow/gh-game-core/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("dsn", cfg.Database.DSN()))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Ensure schema is up to date
	if err := store.AutoMigrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database schema", zap.Error(err))
	}

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.Ledger.HTTPTimeout)
	natsJS := adapter.NewNatsJetStream()

	// Initialize rate limit proxy when Redis is configured
	var rateLimitProxy ratelimit.Proxy
	if cfg.RateLimiter.RedisAddr != "" {
		redisClient := adapter.NewRedisClient(cfg.RateLimiter.RedisAddr, cfg.RateLimiter.RedisPassword, cfg.RateLimiter.RedisDB)
		rateLimitProxy, err = ratelimit.NewProxy(cfg.RateLimiter, redisClient, clock)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to initialize rate limit proxy", zap.Error(err))
		}
		defer rateLimitProxy.Close()
	} else {
		logger.WarnCtx(ctx, "Rate limiter not configured, ledger requests are unthrottled")
	}

	// Initialize ledger clients
	assets := ledger.NewAssetClient(httpClient, rateLimitProxy, cfg.Ledger.AssetsURL)
	tokens := ledger.NewTokenClient(httpClient, rateLimitProxy, cfg.Ledger.TokensURL)

	// Initialize economy event publisher
	publisher, err := jetstream.NewPublisher(jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.EconomyStream,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, natsJS, jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()

	// Initialize game engine
	entropy := game.NewBlockEntropy(assets)
	engine := game.NewEngine(
		dataStore,
		assets,
		tokens,
		entropy,
		publisher,
		clock,
		jsonAdapter,
		cfg.Economy,
		domain.OwnerName(cfg.Ledger.GameAccount),
	)

	// Initialize economy sweeper
	economySweeperConfig := &sweeper.EconomySweeperConfig{
		BatchSize:      cfg.EconomySweeper.BatchSize,
		WorkerPoolSize: cfg.EconomySweeper.Worker.WorkerPoolSize,
	}
	economySweeper := sweeper.NewEconomySweeper(economySweeperConfig, dataStore, engine, clock)

	logger.InfoCtx(ctx, "Initialized economy sweeper (continuous mode)",
		zap.Int("batch_size", cfg.EconomySweeper.BatchSize),
		zap.Int("worker_pool_size", cfg.EconomySweeper.Worker.WorkerPoolSize),
	)

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := economySweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweeper
	cancel()

	// Give the sweeper time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := economySweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}
