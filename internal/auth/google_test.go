package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newGoogleStub(t *testing.T, userinfo string) *GoogleOAuth {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "code-123", r.PostForm.Get("code"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(userinfo))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewGoogleOAuth(GoogleOAuthConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost/auth/callback",
		Endpoint:     oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"},
		UserInfoURL:  srv.URL + "/userinfo",
	})
}

func TestGoogleOAuth_AuthCodeURL(t *testing.T) {
	g := NewGoogleOAuth(GoogleOAuthConfig{ClientID: "client", RedirectURL: "http://localhost/auth/callback"})
	parsed, err := url.Parse(g.AuthCodeURL("state-1"))
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", parsed.Host)
	assert.Equal(t, "state-1", parsed.Query().Get("state"))
	assert.Contains(t, parsed.Query().Get("scope"), "email")
}

func TestGoogleOAuth_Exchange(t *testing.T) {
	g := newGoogleStub(t, `{"sub":"g-1","email":"ani@example.com","email_verified":true,"name":"Ani"}`)
	profile, err := g.Exchange(context.Background(), "code-123")
	require.NoError(t, err)
	assert.Equal(t, "g-1", profile.Subject)
	assert.Equal(t, "Ani", profile.Name)
}

func TestGoogleOAuth_UnverifiedEmail(t *testing.T) {
	g := newGoogleStub(t, `{"sub":"g-1","email":"ani@example.com","email_verified":false}`)
	_, err := g.Exchange(context.Background(), "code-123")
	assert.ErrorIs(t, err, ErrEmailNotVerified)
}
