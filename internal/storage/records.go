package storage

import (
	"context"
	"encoding/json"
	"fmt"

	billingDomain "github.com/halcyonapp/halcyon/internal/billing/domain"
	identityDomain "github.com/halcyonapp/halcyon/internal/identity/domain"
)

// Records is the typed codec over the raw gateway. Date fields serialize
// as RFC 3339 strings and are rehydrated into time.Time on load; raw
// strings are never valid in-memory values.
type Records struct {
	gateway Gateway
}

// NewRecords wraps a gateway with the typed record codec.
func NewRecords(gateway Gateway) *Records {
	return &Records{gateway: gateway}
}

// SavePrincipal stores the principal record.
func (r *Records) SavePrincipal(ctx context.Context, principal *identityDomain.Principal) error {
	if principal == nil {
		return r.gateway.Remove(ctx, KeyPrincipal)
	}
	data, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("failed to encode principal: %w", err)
	}
	return r.gateway.Set(ctx, KeyPrincipal, string(data))
}

// LoadPrincipal returns the stored principal, or nil when none exists.
func (r *Records) LoadPrincipal(ctx context.Context) (*identityDomain.Principal, error) {
	raw, err := r.gateway.Get(ctx, KeyPrincipal)
	if err != nil {
		if err == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	var principal identityDomain.Principal
	if err := json.Unmarshal([]byte(raw), &principal); err != nil {
		return nil, fmt.Errorf("failed to decode principal: %w", err)
	}
	return &principal, nil
}

// ClearPrincipal removes the principal record. The subscription record is
// deliberately left in place so a re-login does not force a re-purchase.
func (r *Records) ClearPrincipal(ctx context.Context) error {
	return r.gateway.Remove(ctx, KeyPrincipal)
}

// SaveSubscription stores the subscription record.
func (r *Records) SaveSubscription(ctx context.Context, sub *billingDomain.Subscription) error {
	if sub == nil {
		return r.gateway.Remove(ctx, KeySubscription)
	}
	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to encode subscription: %w", err)
	}
	return r.gateway.Set(ctx, KeySubscription, string(data))
}

// LoadSubscription returns the stored subscription, or nil when none exists.
func (r *Records) LoadSubscription(ctx context.Context) (*billingDomain.Subscription, error) {
	raw, err := r.gateway.Get(ctx, KeySubscription)
	if err != nil {
		if err == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	var sub billingDomain.Subscription
	if err := json.Unmarshal([]byte(raw), &sub); err != nil {
		return nil, fmt.Errorf("failed to decode subscription: %w", err)
	}
	return &sub, nil
}

// Gateway exposes the underlying gateway for non-record keys.
func (r *Records) Gateway() Gateway {
	return r.gateway
}
