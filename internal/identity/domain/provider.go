package domain

import "context"

// ChangeCallback receives the current principal on every identity change
// notification. A nil principal means signed out.
type ChangeCallback func(*Principal)

// Provider is the port to the external identity provider. Implementations
// normalize provider-specific failures into AuthError before returning.
type Provider interface {
	// SignIn authenticates with email and password.
	SignIn(ctx context.Context, email, password string) (*Principal, error)

	// SignUp creates a new account.
	SignUp(ctx context.Context, email, password string) (*Principal, error)

	// SignOut ends the current session.
	SignOut(ctx context.Context) error

	// SendPasswordReset triggers the provider's reset email.
	SendPasswordReset(ctx context.Context, email string) error

	// OnChange subscribes to identity change notifications. The returned
	// function unsubscribes the callback.
	OnChange(cb ChangeCallback) (unsubscribe func())

	// RefreshToken forces a fresh identity token and returns it.
	// Privileged backend calls use this so stale tokens are never sent.
	RefreshToken(ctx context.Context) (string, error)
}
