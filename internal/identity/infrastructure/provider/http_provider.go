package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/halcyonapp/halcyon/internal/identity/domain"
	"golang.org/x/oauth2"
)

// HTTPProvider talks to a REST identity backend. Sessions are established
// through the OAuth2 password grant; account records are fetched with the
// resulting bearer token. All backend failures are normalized into the
// domain AuthError taxonomy before they leave this package.
type HTTPProvider struct {
	baseURL string
	oauth   *oauth2.Config
	client  *http.Client
	device  domain.DeviceMetadata
	logger  *slog.Logger

	mu      sync.Mutex
	token   *oauth2.Token
	current *domain.Principal

	notifier notifier
}

// HTTPProviderConfig configures the REST identity adapter.
type HTTPProviderConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	TokenURL     string
	Device       domain.DeviceMetadata
	HTTPClient   *http.Client
}

// NewHTTPProvider creates a provider backed by a REST identity service.
func NewHTTPProvider(cfg HTTPProviderConfig, logger *slog.Logger) (*HTTPProvider, error) {
	if cfg.BaseURL == "" || cfg.TokenURL == "" {
		return nil, errors.New("identity provider configuration is incomplete")
	}
	if logger == nil {
		logger = slog.Default()
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return &HTTPProvider{
		baseURL: cfg.BaseURL,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: cfg.TokenURL},
		},
		client: client,
		device: cfg.Device,
		logger: logger,
	}, nil
}

// SignIn authenticates with email and password.
func (p *HTTPProvider) SignIn(ctx context.Context, email, password string) (*domain.Principal, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)

	token, err := p.oauth.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		return nil, mapTokenError(err)
	}

	principal, err := p.fetchAccount(ctx, token)
	if err != nil {
		return nil, err
	}

	p.setSession(token, principal)
	return principal.Clone(), nil
}

// SignUp creates a new account and establishes a session for it.
func (p *HTTPProvider) SignUp(ctx context.Context, email, password string) (*domain.Principal, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/accounts", bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewAuthError(domain.CodeUnknown, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, domain.NewAuthError(domain.CodeUnknown, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, mapResponseError(resp)
	}

	// The account exists; establish the session like a regular sign-in.
	return p.SignIn(ctx, email, password)
}

// SignOut ends the current session and notifies subscribers.
func (p *HTTPProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	p.token = nil
	p.current = nil
	p.mu.Unlock()

	p.notifier.notify(nil)
	return nil
}

// SendPasswordReset triggers the backend's reset email.
func (p *HTTPProvider) SendPasswordReset(ctx context.Context, email string) error {
	body, _ := json.Marshal(map[string]string{"email": email})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/account/reset", bytes.NewReader(body))
	if err != nil {
		return domain.NewAuthError(domain.CodeUnknown, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.NewAuthError(domain.CodeUnknown, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return mapResponseError(resp)
	}
	return nil
}

// OnChange subscribes to identity change notifications.
func (p *HTTPProvider) OnChange(cb domain.ChangeCallback) func() {
	unsubscribe := p.notifier.subscribe(cb)

	// Replay the current session state so late subscribers converge.
	p.mu.Lock()
	current := p.current.Clone()
	p.mu.Unlock()
	cb(current)

	return unsubscribe
}

// RefreshToken forces a token refresh and returns the fresh access token.
func (p *HTTPProvider) RefreshToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	token := p.token
	p.mu.Unlock()

	if token == nil {
		return "", domain.NewAuthError(domain.CodeNoSession, "")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)

	// Expire the cached copy so the token source cannot hand back a
	// stale access token.
	expired := *token
	expired.Expiry = time.Now().Add(-time.Minute)

	fresh, err := p.oauth.TokenSource(ctx, &expired).Token()
	if err != nil {
		return "", mapTokenError(err)
	}

	p.mu.Lock()
	p.token = fresh
	p.mu.Unlock()

	return fresh.AccessToken, nil
}

func (p *HTTPProvider) setSession(token *oauth2.Token, principal *domain.Principal) {
	p.mu.Lock()
	p.token = token
	p.current = principal
	p.mu.Unlock()

	p.notifier.notify(principal)
}

// accountPayload is the backend's account record shape.
type accountPayload struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerified"`
	DisplayName   string    `json:"displayName"`
	PhotoURL      string    `json:"photoUrl"`
	Provider      string    `json:"provider"`
	CreatedAt     time.Time `json:"createdAt"`
	LastLoginAt   time.Time `json:"lastLoginAt"`
}

func (p *HTTPProvider) fetchAccount(ctx context.Context, token *oauth2.Token) (*domain.Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v1/account", nil)
	if err != nil {
		return nil, domain.NewAuthError(domain.CodeUnknown, err.Error())
	}
	token.SetAuthHeader(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, domain.NewAuthError(domain.CodeUnknown, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, mapResponseError(resp)
	}

	var payload accountPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domain.NewAuthError(domain.CodeUnknown, err.Error())
	}

	prov := domain.AuthProvider(payload.Provider)
	if prov == "" {
		prov = domain.ProviderPassword
	}

	return &domain.Principal{
		ID:            payload.ID,
		Email:         payload.Email,
		EmailVerified: payload.EmailVerified,
		DisplayName:   payload.DisplayName,
		PhotoURL:      payload.PhotoURL,
		Provider:      prov,
		CreatedAt:     payload.CreatedAt,
		LastLoginAt:   payload.LastLoginAt,
		Device:        p.device,
	}, nil
}

// errorEnvelope is the backend's error shape: {"error": {"code": "..."}}.
type errorEnvelope struct {
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func mapResponseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Code != "" {
		return domain.MapProviderError(envelope.Error.Code, nil)
	}
	return domain.MapProviderError("", fmt.Errorf("http %d", resp.StatusCode))
}

func mapTokenError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		var envelope errorEnvelope
		if jsonErr := json.Unmarshal(retrieveErr.Body, &envelope); jsonErr == nil && envelope.Error.Code != "" {
			return domain.MapProviderError(envelope.Error.Code, nil)
		}
		if retrieveErr.ErrorCode != "" {
			return domain.MapProviderError(retrieveErr.ErrorCode, nil)
		}
	}
	return domain.MapProviderError("", err)
}
