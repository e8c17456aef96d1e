package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"boardsync/internal/application/reconcile"
	"boardsync/internal/infrastructure/config"
	"boardsync/internal/infrastructure/database"
	"boardsync/internal/infrastructure/migration"
	"boardsync/internal/infrastructure/ratelimit"
	"boardsync/internal/infrastructure/repository"
	"boardsync/internal/infrastructure/trello"
	httpRouter "boardsync/internal/interfaces/http"
	sharedDB "boardsync/internal/shared/db"
	"boardsync/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the webhook listener that keeps tracker tickets and board cards in sync.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	if autoMigrate {
		migrator, err := migration.New(database.Get(), cfg.Database.Driver)
		if err != nil {
			logger.Fatal("failed to create migrator", "error", err)
		}
		if err := migrator.Up(); err != nil {
			logger.Fatal("failed to apply migrations", "error", err)
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	var limiter ratelimit.Limiter = ratelimit.NewRedisLimiter(redisClient, cfg.Trello.WebhookRateLimit)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis unreachable, webhook rate limiting disabled", "error", err)
		limiter = ratelimit.NoopLimiter{}
	}

	log := logger.NewLogger()

	ticketRepo := repository.NewTicketRepository(database.Get())
	boardClient := trello.NewClient(cfg.Trello, log)
	txManager := sharedDB.NewTransactionManager(database.Get())
	resolver := reconcile.NewResolver(ticketRepo, boardClient, log)
	engine := reconcile.NewEngine(ticketRepo, boardClient, resolver, txManager, &cfg.Trello, &cfg.Tracker, log)
	eventRouter := reconcile.NewRouter(engine, log)
	sweeper := reconcile.NewSweeper(engine, boardClient, &cfg.Trello, log)

	router := httpRouter.NewRouter(eventRouter, engine, sweeper, ticketRepo, database.Get(), limiter, &cfg.Trello, cfg.Server.Mode, log)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}
