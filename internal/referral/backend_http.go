package referral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BackendConfig configures the HTTP referral backend.
type BackendConfig struct {
	// BaseURL is the referral service root, without a trailing slash.
	BaseURL string

	// BreakerEnabled wraps every call in a circuit breaker.
	BreakerEnabled bool

	// BreakerTrips is the consecutive-failure count that opens the
	// breaker.
	BreakerTrips uint32

	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout time.Duration
}

// envelope is the callable-style response wrapper every endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Payload json.RawMessage `json:"payload"`
}

// HTTPBackend calls the referral service over JSON POST endpoints. A
// failing backend trips the breaker so referral calls fail fast instead
// of stalling the app.
type HTTPBackend struct {
	config  BackendConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*envelope]
	logger  *slog.Logger
}

// NewHTTPBackend creates the HTTP referral backend.
func NewHTTPBackend(config BackendConfig, logger *slog.Logger) *HTTPBackend {
	if logger == nil {
		logger = slog.Default()
	}

	backend := &HTTPBackend{
		config: config,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}

	if config.BreakerEnabled {
		trips := config.BreakerTrips
		if trips == 0 {
			trips = 5
		}
		backend.breaker = gobreaker.NewCircuitBreaker[*envelope](gobreaker.Settings{
			Name:    "referral-backend",
			Timeout: config.BreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= trips
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Info("circuit breaker state changed",
					"breaker", name,
					"from", from.String(),
					"to", to.String(),
				)
			},
		})
	}

	return backend
}

// GenerateLink asks the backend for a shareable link.
func (b *HTTPBackend) GenerateLink(ctx context.Context, token string) (*Link, error) {
	env, err := b.call(ctx, token, "generateReferralLink", nil)
	if err != nil {
		return nil, err
	}

	var link Link
	if err := json.Unmarshal(env.Payload, &link); err != nil {
		return nil, fmt.Errorf("failed to decode referral link: %w", err)
	}
	return &link, nil
}

// ProcessReward reports a completed referral with advisory signals.
func (b *HTTPBackend) ProcessReward(ctx context.Context, token, referrerID, deviceID, platform string) error {
	_, err := b.call(ctx, token, "processReferralReward", map[string]string{
		"referrerId": referrerID,
		"deviceId":   deviceID,
		"platform":   platform,
	})
	return err
}

// Stats fetches the caller's referral activity.
func (b *HTTPBackend) Stats(ctx context.Context, token string) (*Stats, error) {
	env, err := b.call(ctx, token, "getReferralStats", nil)
	if err != nil {
		return nil, err
	}

	var stats Stats
	if err := json.Unmarshal(env.Payload, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode referral stats: %w", err)
	}
	return &stats, nil
}

func (b *HTTPBackend) call(ctx context.Context, token, endpoint string, body any) (*envelope, error) {
	if b.breaker == nil {
		return b.post(ctx, token, endpoint, body)
	}
	return b.breaker.Execute(func() (*envelope, error) {
		return b.post(ctx, token, endpoint, body)
	})
}

func (b *HTTPBackend) post(ctx context.Context, token, endpoint string, body any) (*envelope, error) {
	payload := []byte("{}")
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
	}

	url := fmt.Sprintf("%s/v1/referral/%s", b.config.BaseURL, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("referral call failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("referral backend returned %d", resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("referral backend rejected %s: %s", endpoint, env.Message)
	}

	b.logger.Debug("referral call succeeded", "endpoint", endpoint)
	return &env, nil
}

var _ Backend = (*HTTPBackend)(nil)
