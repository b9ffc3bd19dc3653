package store

import (
	billingDomain "github.com/halcyonapp/halcyon/internal/billing/domain"
	identityDomain "github.com/halcyonapp/halcyon/internal/identity/domain"
	sessionDomain "github.com/halcyonapp/halcyon/internal/session/domain"
)

// ActionType enumerates the closed set of state mutations. Every change
// to session state goes through Dispatch with one of these; nothing
// writes fields directly.
type ActionType string

const (
	ActionSetPrincipal    ActionType = "SET_PRINCIPAL"
	ActionSetSubscription ActionType = "SET_SUBSCRIPTION"
	ActionSetUserState    ActionType = "SET_USER_STATE"
	ActionSetError        ActionType = "SET_ERROR"
	ActionClearError      ActionType = "CLEAR_ERROR"
	ActionSetLoading      ActionType = "SET_LOADING"
	ActionSetInitialized  ActionType = "SET_INITIALIZED"
	ActionReset           ActionType = "RESET"
)

// Action is a dispatched state mutation. Only the field matching the
// type is read by the reducer.
type Action struct {
	Type         ActionType
	Principal    *identityDomain.Principal
	Subscription *billingDomain.Subscription
	UserState    sessionDomain.UserState
	Err          *identityDomain.AuthError
	Flag         bool
}

// SetPrincipal replaces the authenticated principal. Nil means signed out.
func SetPrincipal(p *identityDomain.Principal) Action {
	return Action{Type: ActionSetPrincipal, Principal: p}
}

// SetSubscription replaces the subscription record. Nil means no record.
func SetSubscription(sub *billingDomain.Subscription) Action {
	return Action{Type: ActionSetSubscription, Subscription: sub}
}

// SetUserState overrides the derived user state. Dispatch resolves this
// automatically after principal or subscription changes; callers rarely
// need it directly.
func SetUserState(state sessionDomain.UserState) Action {
	return Action{Type: ActionSetUserState, UserState: state}
}

// SetError records an authentication failure.
func SetError(err *identityDomain.AuthError) Action {
	return Action{Type: ActionSetError, Err: err}
}

// ClearError discards the recorded failure.
func ClearError() Action {
	return Action{Type: ActionClearError}
}

// SetLoading flips the loading flag.
func SetLoading(loading bool) Action {
	return Action{Type: ActionSetLoading, Flag: loading}
}

// SetInitialized marks initialization complete.
func SetInitialized() Action {
	return Action{Type: ActionSetInitialized, Flag: true}
}

// Reset clears the principal and error on sign-out. The subscription
// record is retained so a re-login does not force a re-purchase.
func Reset() Action {
	return Action{Type: ActionReset}
}
