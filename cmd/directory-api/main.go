package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/bursa-register/internal/api/http"
	"github.com/spec-kit/bursa-register/internal/api/http/handlers"
	"github.com/spec-kit/bursa-register/internal/auth"
	"github.com/spec-kit/bursa-register/internal/config"
	"github.com/spec-kit/bursa-register/internal/domain"
	"github.com/spec-kit/bursa-register/internal/events"
	"github.com/spec-kit/bursa-register/internal/observability"
	"github.com/spec-kit/bursa-register/internal/persistence"
	"github.com/spec-kit/bursa-register/internal/repository"
	"github.com/spec-kit/bursa-register/internal/service"
	"github.com/spec-kit/bursa-register/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	variant, err := domain.ParseVariant(cfg.Wizard.Variant)
	if err != nil {
		logger.Fatal("invalid wizard variant", zap.Error(err))
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	dispatcher := events.NewInMemoryDispatcher(logger)

	var mailer service.Mailer
	if cfg.Notification.AWSRegion != "" {
		sesClient, err := service.NewSESMailer(ctx, cfg.Notification.AWSRegion)
		if err != nil {
			logger.Fatal("failed to init ses", zap.Error(err))
		}
		mailer = sesClient
	} else {
		logger.Warn("AWS_REGION not set, notification emails are only logged")
	}
	notifications := service.NewNotificationService(dispatcher, mailer, logger, cfg.Notification)

	worker.Start(ctx, worker.Config{
		Notifications: notifications,
		Logger:        logger,
	})

	submissions, err := service.NewSubmissionService(repository.NewSubmissionRepository(pg.PoolHandle()), dispatcher, variant, logger)
	if err != nil {
		logger.Fatal("failed to init submission service", zap.Error(err))
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())
	metrics := observability.NewMetrics("bursa_directory")

	app := fiber.New(fiber.Config{AppName: cfg.App.Name + "-directory"})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterDirectoryRoutes(app, httptransport.DirectoryRouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name+"-directory", cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
		}),
		Submissions:    handlers.NewSubmissionsHandler(submissions),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, nil, auth.MiddlewareOptions{}, logger),
		Metrics:        metrics.Handler(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	logger.Info("directory api started", zap.String("addr", cfg.App.Addr()), zap.String("variant", variant.Name))

	waitForShutdown(logger)

	cancel()
	_ = app.ShutdownWithTimeout(10 * time.Second)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
