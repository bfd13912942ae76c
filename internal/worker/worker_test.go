package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/bursa-register/internal/wizard"
)

func TestStart_NothingConfigured(t *testing.T) {
	assert.NotPanics(t, func() { Start(context.Background(), Config{}) })
}

func TestStart_JanitorStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	registry := wizard.NewRegistry(time.Millisecond)
	Start(ctx, Config{Wizards: registry, SweepInterval: 5 * time.Millisecond})
	time.Sleep(20 * time.Millisecond)
	cancel()
	assert.Zero(t, registry.Len())
}

type countingSweeper struct{ runs chan time.Duration }

func (s countingSweeper) Run(ctx context.Context, interval time.Duration, _ func(int)) {
	s.runs <- interval
	<-ctx.Done()
}

func TestStart_UploadLimitSweeper(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper := countingSweeper{runs: make(chan time.Duration, 1)}

	Start(ctx, Config{UploadLimits: sweeper})

	select {
	case interval := <-sweeper.runs:
		assert.Equal(t, time.Minute, interval)
	case <-time.After(time.Second):
		t.Fatal("sweeper not started")
	}
}
