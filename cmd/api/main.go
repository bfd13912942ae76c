package main

import (
	"context"
	"errors"
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
	"github.com/spec-kit/bursa-register/internal/directory"
	"github.com/spec-kit/bursa-register/internal/domain"
	"github.com/spec-kit/bursa-register/internal/media"
	"github.com/spec-kit/bursa-register/internal/observability"
	"github.com/spec-kit/bursa-register/internal/persistence"
	"github.com/spec-kit/bursa-register/internal/service"
	"github.com/spec-kit/bursa-register/internal/wizard"
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

	metrics := observability.NewMetrics("bursa")

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())
	revocations := auth.NewRedisRevocations(redis.Client)
	sessions := auth.NewProvider(revocations)

	client := directory.NewClient(cfg.Directory.BaseURL, cfg.Directory.Timeout(), logger)
	directoryService := directory.NewCachedService(client, redis.Client, cfg.Directory.StatusCacheTTL(), logger)

	var store wizard.MediaStore = media.Unavailable{}
	cloudinaryStore, err := media.NewCloudinaryStore(cfg.Media.CloudinaryURL, cfg.Media.Folder, logger)
	switch {
	case err == nil:
		store = cloudinaryStore
	case errors.Is(err, media.ErrNotConfigured):
		logger.Warn("CLOUDINARY_URL not set, image uploads will fail")
	default:
		logger.Fatal("failed to init media store", zap.Error(err))
	}

	registry := wizard.NewRegistry(cfg.Wizard.IdleTTL())
	wizards := service.NewWizardService(service.WizardServiceConfig{
		Registry:      registry,
		Sessions:      sessions,
		Status:        directoryService,
		Submissions:   directoryService,
		Media:         store,
		Variant:       variant,
		MaxImageBytes: cfg.Media.MaxImageBytes,
		Metrics:       metrics,
		Logger:        logger,
	})

	var oauth service.OAuthFlow
	if cfg.Auth.OAuthEnabled() {
		oauth = auth.NewGoogleOAuth(auth.GoogleOAuthConfig{
			ClientID:     cfg.Auth.GoogleClientID,
			ClientSecret: cfg.Auth.GoogleClientSecret,
			RedirectURL:  cfg.Auth.GoogleRedirectURL,
		})
	} else {
		logger.Warn("google oauth credentials missing, sign-in disabled")
	}
	authService := service.NewAuthService(oauth, tokens, sessions, wizards, logger)

	uploadLimiter := httptransport.NewUploadLimiter(cfg.Media.UploadsPerMinute, logger)
	worker.Start(ctx, worker.Config{
		Wizards:       registry,
		UploadLimits:  uploadLimiter,
		SweepInterval: cfg.Wizard.SweepInterval(),
		Metrics:       metrics,
		Logger:        logger,
	})

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Media.MaxImageBytes)*domain.MaxPhotos + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	redirects := handlers.Redirects{
		SignIn:           cfg.Auth.SignInPath,
		AlreadySubmitted: cfg.Wizard.AlreadySubmittedTo,
		Success:          cfg.Wizard.SuccessTo,
	}
	cookies := handlers.CookieSettings{
		Name:     cfg.Auth.CookieName,
		Secure:   cfg.Auth.CookieSecure,
		StateTTL: time.Duration(cfg.Auth.StateCookieTTLSeconds) * time.Second,
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"redis":     redis,
			"directory": client,
		}),
		Auth:    handlers.NewAuthHandler(authService, cookies, cfg.Auth.PostSignInRedirect, cfg.Auth.PostSignOutRedirect, redirects, logger),
		Catalog: handlers.NewCatalogHandler(variant),
		Wizards: handlers.NewWizardHandler(wizards, redirects, logger),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, revocations, auth.MiddlewareOptions{
			CookieName: cfg.Auth.CookieName,
			SignInPath: cfg.Auth.SignInPath,
		}, logger),
		UploadLimiter: uploadLimiter,
		Metrics:       metrics.Handler(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	logger.Info("bff started", zap.String("addr", cfg.App.Addr()), zap.String("variant", variant.Name))

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
