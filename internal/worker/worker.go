package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/bursa-register/internal/observability"
	"github.com/spec-kit/bursa-register/internal/service"
	"github.com/spec-kit/bursa-register/internal/wizard"
)

// Sweeper evicts idle per-key state on a timer.
type Sweeper interface {
	Run(ctx context.Context, interval time.Duration, onSweep func(removed int))
}

// Config lists the background jobs of a process. Nil members are skipped.
type Config struct {
	Notifications *service.NotificationService
	Wizards       *wizard.Registry
	UploadLimits  Sweeper
	SweepInterval time.Duration
	Metrics       *observability.Metrics
	Logger        *zap.Logger
}

// Start registers event handlers and launches periodic jobs. Goroutines stop
// when ctx is cancelled.
func Start(ctx context.Context, cfg Config) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Notifications != nil {
		cfg.Notifications.RegisterHandlers()
		logger.Debug("notification handlers registered")
	}

	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	if cfg.Wizards != nil {
		registry := cfg.Wizards
		go registry.Run(ctx, interval, func(removed int) {
			logger.Info("expired idle wizards", zap.Int("removed", removed))
			cfg.Metrics.SetActiveWizards(registry.Len())
		})
	}
	if cfg.UploadLimits != nil {
		go cfg.UploadLimits.Run(ctx, interval, func(removed int) {
			logger.Debug("dropped idle upload limiters", zap.Int("removed", removed))
		})
	}
}
