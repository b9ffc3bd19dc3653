package domain

import "time"

// AuthProvider identifies how the principal authenticated.
type AuthProvider string

const (
	ProviderPassword AuthProvider = "password"
	ProviderGoogle   AuthProvider = "google"
	ProviderApple    AuthProvider = "apple"
)

// DeviceMetadata describes the device a principal signed in from.
type DeviceMetadata struct {
	DeviceID   string `json:"deviceId"`
	Platform   string `json:"platform"`
	AppVersion string `json:"appVersion"`
}

// Principal is the local copy of the identity provider's account record.
// It is mapped wholesale on every change notification and never patched
// in place; treat instances as immutable.
type Principal struct {
	ID            string         `json:"id"`
	Email         string         `json:"email,omitempty"`
	EmailVerified bool           `json:"emailVerified"`
	DisplayName   string         `json:"displayName,omitempty"`
	PhotoURL      string         `json:"photoUrl,omitempty"`
	Provider      AuthProvider   `json:"provider"`
	CreatedAt     time.Time      `json:"createdAt"`
	LastLoginAt   time.Time      `json:"lastLoginAt"`
	Device        DeviceMetadata `json:"device"`
}

// Clone returns a copy of the principal. Consumers that hold state
// snapshots use this to avoid sharing the record across dispatches.
func (p *Principal) Clone() *Principal {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}
