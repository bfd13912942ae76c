package auth

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/bursa-register/internal/domain"
	apperrors "github.com/spec-kit/bursa-register/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// MiddlewareOptions controls where tokens are read from and how a missing
// session is reported.
type MiddlewareOptions struct {
	// CookieName enables reading the token from a cookie before the
	// Authorization header.
	CookieName string
	// SignInPath turns a missing session into a redirect hint.
	SignInPath string
}

// AuthMiddleware validates session tokens and loads principals.
type AuthMiddleware struct {
	tokens      *TokenManager
	revocations RevocationStore
	opts        MiddlewareOptions
	logger      *zap.Logger
}

// NewAuthMiddleware constructs middleware. revocations may be nil.
func NewAuthMiddleware(tokens *TokenManager, revocations RevocationStore, opts MiddlewareOptions, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, revocations: revocations, opts: opts, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	raw, err := m.extract(c)
	if err != nil {
		return m.reject(err.Error())
	}

	session, err := m.tokens.ParseToken(raw)
	if err != nil {
		return m.reject("invalid token")
	}

	if m.revocations != nil {
		revoked, err := m.revocations.IsRevoked(c.UserContext(), session.ID)
		if err != nil {
			m.logger.Error("revocation lookup failed", zap.Error(err))
			return apperrors.NewInternalError(err)
		}
		if revoked {
			return m.reject("session signed out")
		}
	}

	c.Locals(principalKey, session)
	c.SetUserContext(WithSession(c.UserContext(), session))
	return c.Next()
}

func (m *AuthMiddleware) extract(c *fiber.Ctx) (string, error) {
	if m.opts.CookieName != "" {
		if v := c.Cookies(m.opts.CookieName); v != "" {
			return v, nil
		}
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", errMissingCredentials
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errBadHeader
	}
	return parts[1], nil
}

func (m *AuthMiddleware) reject(reason string) error {
	if m.opts.SignInPath != "" {
		return apperrors.NewRedirect(http.StatusUnauthorized, "NO_SESSION", m.opts.SignInPath)
	}
	return apperrors.NewUnauthorized(reason)
}

// PrincipalFromContext retrieves the authenticated session.
func PrincipalFromContext(c *fiber.Ctx) (*domain.Session, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*domain.Session)
	return principal, ok
}

type credentialError string

func (e credentialError) Error() string { return string(e) }

const (
	errMissingCredentials credentialError = "missing credentials"
	errBadHeader          credentialError = "invalid authorization header"
)
