package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/queue-service/internal/api/http"
	"github.com/spec-kit/queue-service/internal/api/http/handlers"
	"github.com/spec-kit/queue-service/internal/auth"
	"github.com/spec-kit/queue-service/internal/broadcast"
	"github.com/spec-kit/queue-service/internal/config"
	"github.com/spec-kit/queue-service/internal/events"
	"github.com/spec-kit/queue-service/internal/observability"
	"github.com/spec-kit/queue-service/internal/persistence"
	"github.com/spec-kit/queue-service/internal/repository"
	"github.com/spec-kit/queue-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	queueRepo := repository.NewQueueRepository(pool)
	transactionRepo := repository.NewTransactionRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	hub := broadcast.NewHub(logger)
	broadcaster := broadcast.NewBroadcaster(hub, redis.Client, cfg.Queue.BroadcastChannel, logger)
	broadcaster.RegisterHandlers(dispatcher)

	queueService := service.NewQueueService(service.QueueDependencies{
		QueueRepo:          queueRepo,
		TransactionRepo:    transactionRepo,
		StatsRepo:          statsRepo,
		Dispatcher:         dispatcher,
		StartNumber:        cfg.Queue.StartNumber,
		MinutesPerPosition: cfg.Queue.MinutesPerPosition,
	})
	feedbackService := service.NewFeedbackService(service.FeedbackDependencies{
		FeedbackRepo: feedbackRepo,
		StatsRepo:    statsRepo,
	})
	statsService := service.NewStatsService(service.StatsDependencies{
		QueueRepo:       queueRepo,
		TransactionRepo: transactionRepo,
		FeedbackRepo:    feedbackRepo,
		StatsRepo:       statsRepo,
	})
	authService := service.NewAuthService(cfg.Auth, adminRepo)

	if err := authService.EnsureDefaultAdmin(ctx, cfg.Auth.DefaultAdminUsername, cfg.Auth.DefaultAdminPassword, cfg.Auth.DefaultAdminName); err != nil {
		logger.Fatal("failed to seed default admin", zap.Error(err))
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), adminRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Queue:          handlers.NewQueueHandler(queueService),
		Feedback:       handlers.NewFeedbackHandler(feedbackService),
		Stats:          handlers.NewStatsHandler(statsService),
		Auth:           handlers.NewAuthHandler(authService),
		WS:             handlers.NewWSHandler(hub, logger),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
