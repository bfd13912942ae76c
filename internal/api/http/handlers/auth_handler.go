package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/bursa-register/internal/api/dto"
	"github.com/spec-kit/bursa-register/internal/service"
	apperrors "github.com/spec-kit/bursa-register/pkg/util/errorutil"
)

const stateCookieName = "bursa_oauth_state"

// CookieSettings controls the session and state cookies.
type CookieSettings struct {
	Name     string
	Secure   bool
	StateTTL time.Duration
}

// AuthHandler runs the Google sign-in redirect flow.
type AuthHandler struct {
	auth         *service.AuthService
	cookies      CookieSettings
	afterSignIn  string
	afterSignOut string
	redirects    Redirects
	logger       *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *service.AuthService, cookies CookieSettings, afterSignIn, afterSignOut string, redirects Redirects, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cookies.StateTTL <= 0 {
		cookies.StateTTL = 10 * time.Minute
	}
	return &AuthHandler{
		auth:         authService,
		cookies:      cookies,
		afterSignIn:  afterSignIn,
		afterSignOut: afterSignOut,
		redirects:    redirects,
		logger:       logger,
	}
}

// SignIn sends the browser to the consent page.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	state, url, err := h.auth.BeginSignIn()
	if err != nil {
		return h.redirects.mapError(err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth",
		Expires:  time.Now().Add(h.cookies.StateTTL),
		HTTPOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(url, fiber.StatusFound)
}

// Callback completes sign-in and sets the session cookie.
func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	if reason := c.Query("error"); reason != "" {
		return apperrors.NewUnauthorized("sign-in was cancelled: " + reason)
	}
	state := c.Cookies(stateCookieName)
	if state == "" || state != c.Query("state") {
		return apperrors.NewUnauthorized("sign-in state mismatch")
	}
	code := c.Query("code")
	if code == "" {
		return apperrors.NewValidationError("code is required", nil)
	}
	c.ClearCookie(stateCookieName)

	session, err := h.auth.CompleteSignIn(c.UserContext(), code)
	if err != nil {
		h.logger.Warn("sign-in failed", zap.Error(err))
		return h.redirects.mapError(err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookies.Name,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(h.afterSignIn, fiber.StatusFound)
}

// SignOut revokes the session and clears its cookie.
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	if err := h.auth.SignOut(c.UserContext()); err != nil {
		return h.redirects.mapError(err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookies.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.RedirectResponse{Redirect: h.afterSignOut})
}
