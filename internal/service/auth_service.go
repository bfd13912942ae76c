package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/bursa-register/internal/auth"
	"github.com/spec-kit/bursa-register/internal/domain"
)

// ErrSignInUnavailable is returned when no OAuth client is configured.
var ErrSignInUnavailable = errors.New("sign-in is not configured")

// OAuthFlow is the identity provider side of sign-in.
type OAuthFlow interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*auth.GoogleProfile, error)
}

// AuthService coordinates sign-in and sign-out of browser sessions.
type AuthService struct {
	oauth    OAuthFlow
	tokenMgr *auth.TokenManager
	sessions *auth.Provider
	wizards  *WizardService
	logger   *zap.Logger
}

// NewAuthService builds the service. oauth may be nil when sign-in is disabled.
func NewAuthService(oauth OAuthFlow, tokens *auth.TokenManager, sessions *auth.Provider, wizards *WizardService, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{oauth: oauth, tokenMgr: tokens, sessions: sessions, wizards: wizards, logger: logger}
}

// BeginSignIn returns a fresh state value and the consent URL bound to it.
func (s *AuthService) BeginSignIn() (state, redirectURL string, err error) {
	if s.oauth == nil {
		return "", "", ErrSignInUnavailable
	}
	state = uuid.NewString()
	return state, s.oauth.AuthCodeURL(state), nil
}

// CompleteSignIn exchanges the callback code and issues a session.
func (s *AuthService) CompleteSignIn(ctx context.Context, code string) (*domain.Session, error) {
	if s.oauth == nil {
		return nil, ErrSignInUnavailable
	}
	profile, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	session, err := s.tokenMgr.GenerateToken(auth.Identity{
		Subject: profile.Subject,
		Email:   profile.Email,
		Name:    profile.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}
	s.logger.Info("signed in", zap.String("subject", session.Subject))
	return session, nil
}

// SignOut revokes the current session and drops its wizards.
func (s *AuthService) SignOut(ctx context.Context) error {
	session, err := s.sessions.Session(ctx)
	if err != nil {
		return err
	}
	if err := s.sessions.SignOut(ctx); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	if s.wizards != nil {
		if n := s.wizards.DiscardOwnedBy(session.Subject); n > 0 {
			s.logger.Debug("discarded wizards on sign-out", zap.Int("count", n))
		}
	}
	s.logger.Info("signed out", zap.String("subject", session.Subject))
	return nil
}
