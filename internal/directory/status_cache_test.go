package directory

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bursa-register/internal/domain"
)

type countingService struct {
	statusCalls atomic.Int32
	remaining   int
	submitErr   error
}

func (s *countingService) CheckStatus(context.Context, string) (*domain.StatusReport, error) {
	s.statusCalls.Add(1)
	return &domain.StatusReport{
		User:           domain.Identity{Email: "ani@example.com"},
		Submissions:    []domain.Submission{},
		CanSubmitMore:  s.remaining > 0,
		RemainingSlots: s.remaining,
	}, nil
}

func (s *countingService) Submit(_ context.Context, _ string, payload domain.SubmissionPayload) (*domain.SubmitResult, error) {
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	s.remaining--
	return &domain.SubmitResult{Success: true, Business: domain.BusinessRef{ID: "b1", Name: payload.Name}}, nil
}

func newCache(t *testing.T, next Service) (*CachedService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCachedService(next, client, time.Minute, nil), mr
}

func TestCachedService_HitAndExpiry(t *testing.T) {
	next := &countingService{remaining: 5}
	cache, mr := newCache(t, next)
	ctx := context.Background()

	first, err := cache.CheckStatus(ctx, "tok")
	require.NoError(t, err)
	second, err := cache.CheckStatus(ctx, "tok")
	require.NoError(t, err)

	assert.Equal(t, int32(1), next.statusCalls.Load())
	assert.Equal(t, first.RemainingSlots, second.RemainingSlots)
	assert.True(t, mr.Exists(statusKey("tok")))

	mr.FastForward(2 * time.Minute)
	_, err = cache.CheckStatus(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, int32(2), next.statusCalls.Load())
}

func TestCachedService_SubmitInvalidates(t *testing.T) {
	next := &countingService{remaining: 1}
	cache, mr := newCache(t, next)
	ctx := context.Background()

	report, err := cache.CheckStatus(ctx, "tok")
	require.NoError(t, err)
	require.True(t, report.CanSubmitMore)

	_, err = cache.Submit(ctx, "tok", domain.SubmissionPayload{Name: "Kopi"})
	require.NoError(t, err)
	assert.False(t, mr.Exists(statusKey("tok")))

	report, err = cache.CheckStatus(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, report.CanSubmitMore)
}

func TestCachedService_FailedSubmitKeepsCache(t *testing.T) {
	next := &countingService{remaining: 2, submitErr: errors.New("boom")}
	cache, mr := newCache(t, next)
	ctx := context.Background()

	_, err := cache.CheckStatus(ctx, "tok")
	require.NoError(t, err)
	_, err = cache.Submit(ctx, "tok", domain.SubmissionPayload{})
	require.Error(t, err)
	assert.True(t, mr.Exists(statusKey("tok")))
}

func TestCachedService_RedisDownFallsThrough(t *testing.T) {
	next := &countingService{remaining: 3}
	cache, mr := newCache(t, next)
	mr.Close()

	report, err := cache.CheckStatus(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 3, report.RemainingSlots)
}

func TestStatusKeyDoesNotLeakToken(t *testing.T) {
	key := statusKey("secret-token")
	assert.NotContains(t, key, "secret-token")
	assert.Equal(t, statusKey("secret-token"), key)
}
