package referral

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/google/uuid"

	identityDomain "github.com/halcyonapp/halcyon/internal/identity/domain"
	"github.com/halcyonapp/halcyon/internal/storage"
)

// SessionReader is the slice of session state referral calls need.
type SessionReader interface {
	CurrentPrincipal() *identityDomain.Principal
}

// Client drives the referral flows. All operations fail closed without
// a live principal.
type Client struct {
	session  SessionReader
	provider identityDomain.Provider
	backend  Backend
	gateway  storage.Gateway
	version  string
	logger   *slog.Logger
}

// NewClient creates a referral client. version is the app version
// reported as part of the advisory platform signal.
func NewClient(session SessionReader, provider identityDomain.Provider, backend Backend, gateway storage.Gateway, version string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		session:  session,
		provider: provider,
		backend:  backend,
		gateway:  gateway,
		version:  version,
		logger:   logger,
	}
}

// GenerateReferralLink creates a shareable link for the signed-in user.
// The identity token is force-refreshed first; a stale token must never
// authenticate this call.
func (c *Client) GenerateReferralLink(ctx context.Context) (*Link, error) {
	token, err := c.freshToken(ctx)
	if err != nil {
		return nil, err
	}

	link, err := c.backend.GenerateLink(ctx, token)
	if err != nil {
		c.logger.Warn("failed to generate referral link", "error", err)
		return nil, err
	}

	c.logger.Info("referral link generated", "referral_id", link.ReferralID)
	return link, nil
}

// ProcessReferralReward reports a completed referral. The device
// correlation id and platform string are advisory anti-fraud signals;
// the server decides whether a reward is granted.
func (c *Client) ProcessReferralReward(ctx context.Context, referrerID string) error {
	token, err := c.freshToken(ctx)
	if err != nil {
		return err
	}

	deviceID, err := c.deviceID(ctx)
	if err != nil {
		c.logger.Warn("failed to resolve device id", "error", err)
		deviceID = ""
	}

	platform := fmt.Sprintf("%s/%s", runtime.GOOS, c.version)
	if err := c.backend.ProcessReward(ctx, token, referrerID, deviceID, platform); err != nil {
		c.logger.Warn("failed to process referral reward", "error", err)
		return err
	}

	c.logger.Info("referral reward processed", "referrer_id", referrerID)
	return nil
}

// GetReferralStats returns the signed-in user's referral activity.
func (c *Client) GetReferralStats(ctx context.Context) (*Stats, error) {
	token, err := c.freshToken(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := c.backend.Stats(ctx, token)
	if err != nil {
		c.logger.Warn("failed to fetch referral stats", "error", err)
		return nil, err
	}
	return stats, nil
}

// PendingReferrer returns the referrer id persisted by an invite link,
// or empty when none is pending.
func (c *Client) PendingReferrer(ctx context.Context) (string, error) {
	id, err := c.gateway.Get(ctx, storage.KeyPendingReferrer)
	if err == storage.ErrNotFound {
		return "", nil
	}
	return id, err
}

// ClearPendingReferrer drops the persisted invite association.
func (c *Client) ClearPendingReferrer(ctx context.Context) error {
	return c.gateway.Remove(ctx, storage.KeyPendingReferrer)
}

func (c *Client) freshToken(ctx context.Context) (string, error) {
	if c.session.CurrentPrincipal() == nil {
		return "", identityDomain.NewAuthError(identityDomain.CodeNoSession, "")
	}
	token, err := c.provider.RefreshToken(ctx)
	if err != nil {
		c.logger.Warn("token refresh failed", "error", err)
		return "", err
	}
	return token, nil
}

// deviceID returns the device correlation id, generating and persisting
// it on first use.
func (c *Client) deviceID(ctx context.Context) (string, error) {
	id, err := c.gateway.Get(ctx, storage.KeyDeviceID)
	if err == nil {
		return id, nil
	}
	if err != storage.ErrNotFound {
		return "", err
	}

	id = uuid.NewString()
	if err := c.gateway.Set(ctx, storage.KeyDeviceID, id); err != nil {
		return "", err
	}
	return id, nil
}
