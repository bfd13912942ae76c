package directory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/bursa-register/internal/domain"
)

const statusKeyPrefix = "bursa:status:"

// Service is the remote contract the cache wraps.
type Service interface {
	CheckStatus(ctx context.Context, token string) (*domain.StatusReport, error)
	Submit(ctx context.Context, token string, payload domain.SubmissionPayload) (*domain.SubmitResult, error)
}

// CachedService serves status reports from Redis when fresh and drops the
// cached report of a caller after each successful submission. Redis failures
// fall through to the remote service.
type CachedService struct {
	next   Service
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedService wraps next. A non-positive ttl disables caching.
func NewCachedService(next Service, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedService{next: next, redis: client, ttl: ttl, logger: logger}
}

// CheckStatus returns the cached report or fetches and stores a new one.
func (s *CachedService) CheckStatus(ctx context.Context, token string) (*domain.StatusReport, error) {
	if s.ttl <= 0 || s.redis == nil {
		return s.next.CheckStatus(ctx, token)
	}
	key := statusKey(token)

	raw, err := s.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var report domain.StatusReport
		if jerr := json.Unmarshal(raw, &report); jerr == nil {
			return &report, nil
		}
		s.logger.Warn("discarding unreadable cached status", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		s.logger.Warn("status cache read failed", zap.Error(err))
	}

	report, err := s.next.CheckStatus(ctx, token)
	if err != nil {
		return nil, err
	}

	if encoded, jerr := json.Marshal(report); jerr == nil {
		if serr := s.redis.Set(ctx, key, encoded, s.ttl).Err(); serr != nil {
			s.logger.Warn("status cache write failed", zap.Error(serr))
		}
	}
	return report, nil
}

// Submit forwards to the remote service and invalidates the caller's report.
func (s *CachedService) Submit(ctx context.Context, token string, payload domain.SubmissionPayload) (*domain.SubmitResult, error) {
	result, err := s.next.Submit(ctx, token, payload)
	if err != nil {
		return nil, err
	}
	if ierr := s.Invalidate(ctx, token); ierr != nil {
		s.logger.Warn("status cache invalidate failed", zap.Error(ierr))
	}
	return result, nil
}

// Invalidate drops the cached report of token.
func (s *CachedService) Invalidate(ctx context.Context, token string) error {
	if s.redis == nil {
		return nil
	}
	if err := s.redis.Del(ctx, statusKey(token)).Err(); err != nil {
		return fmt.Errorf("delete status cache: %w", err)
	}
	return nil
}

func statusKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return statusKeyPrefix + hex.EncodeToString(sum[:])
}
