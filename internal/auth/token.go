package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/bursa-register/internal/domain"
)

// TokenManager handles issuing and validating session JWTs. The BFF and the
// directory API share the secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Claims describes JWT payload.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the account a session is issued for.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// GenerateToken builds and signs a JWT for the identity.
func (tm *TokenManager) GenerateToken(id Identity) (*domain.Session, error) {
	if id.Subject == "" || id.Email == "" {
		return nil, errors.New("subject and email are required")
	}
	now := tm.now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Email: id.Email,
		Name:  id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.Subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return nil, err
	}
	return claims.session(tokenString), nil
}

// ParseToken validates the token and returns the session it carries.
func (tm *TokenManager) ParseToken(tokenStr string) (*domain.Session, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, errors.New("token without subject or id")
	}
	return claims.session(tokenStr), nil
}

func (c *Claims) session(token string) *domain.Session {
	s := &domain.Session{
		ID:      c.ID,
		Token:   token,
		Subject: c.Subject,
		Email:   c.Email,
		Name:    c.Name,
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}
