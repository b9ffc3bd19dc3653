// Package storage provides the key/value persistence gateway the auth
// state machine caches its records in. Storage is a best-effort cache,
// not a source of truth: callers log gateway failures and move on.
package storage

import (
	"context"
	"errors"
)

// Well-known record keys.
const (
	KeyPrincipal       = "auth.user"
	KeySubscription    = "auth.subscription"
	KeyDeviceID        = "referral.device_id"
	KeyPendingReferrer = "referral.pending_referrer"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Gateway is the key/value store abstraction. Values are string-serialized
// records; callers own the serialization format.
type Gateway interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}
