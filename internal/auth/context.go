package auth

import (
	"context"

	"github.com/spec-kit/bursa-register/internal/domain"
)

type sessionKey struct{}

// WithSession attaches the caller's session to ctx.
func WithSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session attached by the middleware.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*domain.Session)
	return s, ok && s != nil
}

// Provider resolves sessions from the request context. It serves the wizard
// as its session collaborator.
type Provider struct {
	revocations RevocationStore
}

// NewProvider builds a provider. revocations may be nil when sign-out is not
// offered, as in the directory API.
func NewProvider(revocations RevocationStore) *Provider {
	return &Provider{revocations: revocations}
}

// Session returns the current session or domain.ErrNoSession.
func (p *Provider) Session(ctx context.Context) (*domain.Session, error) {
	s, ok := SessionFromContext(ctx)
	if !ok {
		return nil, domain.ErrNoSession
	}
	return s, nil
}

// SignOut revokes the current session.
func (p *Provider) SignOut(ctx context.Context) error {
	s, ok := SessionFromContext(ctx)
	if !ok {
		return domain.ErrNoSession
	}
	if p.revocations == nil {
		return nil
	}
	return p.revocations.Revoke(ctx, s.ID, s.ExpiresAt)
}
