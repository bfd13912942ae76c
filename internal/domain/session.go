package domain

import (
	"errors"
	"time"
)

// Session is an authenticated browser session. Token is the bearer credential
// forwarded to the directory API and ID is its revocation handle.
type Session struct {
	ID        string
	Token     string
	Subject   string
	Email     string
	Name      string
	ExpiresAt time.Time
}

// ErrNoSession reports a missing or expired session. Callers redirect to
// sign-in instead of showing an error.
var ErrNoSession = errors.New("no active session")
