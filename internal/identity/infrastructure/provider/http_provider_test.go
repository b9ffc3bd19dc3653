package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/halcyonapp/halcyon/internal/identity/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newIdentityBackend spins up a fake REST identity service.
func newIdentityBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())

		switch r.Form.Get("grant_type") {
		case "password":
			if r.Form.Get("password") != "secret-pass" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]string{"code": "auth/wrong-password"},
				})
				return
			}
		case "refresh_token":
			if r.Form.Get("refresh_token") != "refresh-1" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access-" + r.Form.Get("grant_type"),
			"refresh_token": "refresh-1",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	})

	mux.HandleFunc("/v1/account", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(accountPayload{
			ID:            "u1",
			Email:         "user@example.com",
			EmailVerified: true,
			Provider:      "password",
			CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			LastLoginAt:   time.Now().UTC(),
		})
	})

	mux.HandleFunc("/v1/accounts", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["email"] == "taken@example.com" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"code": "auth/email-already-in-use"},
			})
			return
		}
		w.WriteHeader(http.StatusCreated)
	})

	mux.HandleFunc("/v1/account/reset", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	return httptest.NewServer(mux)
}

func newTestHTTPProvider(t *testing.T, server *httptest.Server) *HTTPProvider {
	t.Helper()

	p, err := NewHTTPProvider(HTTPProviderConfig{
		BaseURL:      server.URL,
		ClientID:     "halcyon-app",
		ClientSecret: "shh",
		TokenURL:     server.URL + "/token",
		Device:       domain.DeviceMetadata{DeviceID: "dev-1", Platform: "linux", AppVersion: "1.0.0"},
		HTTPClient:   server.Client(),
	}, nil)
	require.NoError(t, err)
	return p
}

func TestHTTPProvider_SignIn(t *testing.T) {
	server := newIdentityBackend(t)
	defer server.Close()

	p := newTestHTTPProvider(t, server)

	principal, err := p.SignIn(context.Background(), "user@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "u1", principal.ID)
	assert.Equal(t, "user@example.com", principal.Email)
	assert.True(t, principal.EmailVerified)
	assert.Equal(t, domain.ProviderPassword, principal.Provider)
	assert.Equal(t, "dev-1", principal.Device.DeviceID)
}

func TestHTTPProvider_SignIn_WrongPassword(t *testing.T) {
	server := newIdentityBackend(t)
	defer server.Close()

	p := newTestHTTPProvider(t, server)

	_, err := p.SignIn(context.Background(), "user@example.com", "nope")
	authErr, ok := domain.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeWrongPassword, authErr.Code)
}

func TestHTTPProvider_SignUp_EmailInUse(t *testing.T) {
	server := newIdentityBackend(t)
	defer server.Close()

	p := newTestHTTPProvider(t, server)

	_, err := p.SignUp(context.Background(), "taken@example.com", "secret-pass")
	authErr, ok := domain.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeEmailInUse, authErr.Code)
}

func TestHTTPProvider_SignOutNotifies(t *testing.T) {
	server := newIdentityBackend(t)
	defer server.Close()

	p := newTestHTTPProvider(t, server)
	ctx := context.Background()

	var last *domain.Principal
	calls := 0
	unsubscribe := p.OnChange(func(principal *domain.Principal) {
		last = principal
		calls++
	})
	defer unsubscribe()

	_, err := p.SignIn(ctx, "user@example.com", "secret-pass")
	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.NotNil(t, last)

	require.NoError(t, p.SignOut(ctx))
	require.Equal(t, 3, calls)
	assert.Nil(t, last)
}

func TestHTTPProvider_RefreshToken(t *testing.T) {
	server := newIdentityBackend(t)
	defer server.Close()

	p := newTestHTTPProvider(t, server)
	ctx := context.Background()

	_, err := p.RefreshToken(ctx)
	authErr, ok := domain.AsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeNoSession, authErr.Code)

	_, err = p.SignIn(ctx, "user@example.com", "secret-pass")
	require.NoError(t, err)

	token, err := p.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-refresh_token", token)
}
