package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/maxempolk/bank-card-interface/internal/adapter/http"
	"github.com/maxempolk/bank-card-interface/internal/adapter/http/handler"
	postgresRepo "github.com/maxempolk/bank-card-interface/internal/adapter/repository/postgres"
	redisRepo "github.com/maxempolk/bank-card-interface/internal/adapter/repository/redis"
	"github.com/maxempolk/bank-card-interface/internal/adapter/upstream"
	"github.com/maxempolk/bank-card-interface/internal/infrastructure/config"
	"github.com/maxempolk/bank-card-interface/internal/infrastructure/postgres"
	"github.com/maxempolk/bank-card-interface/internal/infrastructure/redis"
	"github.com/maxempolk/bank-card-interface/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()

	// Apply schema before anything touches the tables
	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	transactionRepo := postgresRepo.NewTransactionRepository(pool, log.Logger)
	userRepo := postgresRepo.NewUserRepository(pool)
	balanceCache := redisRepo.NewBalanceCache(redisClient, cfg.BalanceCacheTTL)
	idGen := postgresRepo.NewULIDGenerator()

	// Indexes are created by migrations; ensure them anyway so a scaled
	// deployment can boot instances in any order against an older schema.
	if err := transactionRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure transaction indexes")
	}

	// Upstream banking API client
	bankClient := upstream.NewClient(upstream.Config{
		BalanceURL:      cfg.UpstreamBalanceURL,
		TransactionsURL: cfg.UpstreamTransactionsURL,
		TraceID:         cfg.UpstreamTraceID,
		Channel:         cfg.UpstreamChannel,
		Timeout:         cfg.UpstreamTimeout,
	}, log.Logger)

	// Initialize use cases
	ingestUC := usecase.NewIngestUseCase(transactionRepo, idGen, log.Logger)
	transactionUC := usecase.NewTransactionUseCase(transactionRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	refreshUC := usecase.NewRefreshUseCase(userRepo, bankClient, ingestUC, transactionUC, balanceCache, log.Logger)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userUC)
	transactionHandler := handler.NewTransactionHandler(ingestUC, transactionUC)
	bankHandler := handler.NewBankHandler(bankClient)
	refreshHandler := handler.NewRefreshHandler(refreshUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		UserHandler:        userHandler,
		TransactionHandler: transactionHandler,
		BankHandler:        bankHandler,
		RefreshHandler:     refreshHandler,
		HealthHandler:      healthHandler,
		Logger:             log.Logger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
