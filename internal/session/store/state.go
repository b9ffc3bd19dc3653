package store

import (
	billingDomain "github.com/halcyonapp/halcyon/internal/billing/domain"
	identityDomain "github.com/halcyonapp/halcyon/internal/identity/domain"
	sessionDomain "github.com/halcyonapp/halcyon/internal/session/domain"
)

// State is the session state snapshot handed to listeners. UserState is
// always the resolved function of Principal and Subscription; the store
// keeps them in step on every dispatch.
type State struct {
	Principal     *identityDomain.Principal
	Subscription  *billingDomain.Subscription
	UserState     sessionDomain.UserState
	Err           *identityDomain.AuthError
	IsLoading     bool
	IsInitialized bool
}

// clone returns a snapshot safe to hand outside the lock.
func (s State) clone() State {
	s.Principal = s.Principal.Clone()
	s.Subscription = s.Subscription.Clone()
	return s
}

// ptrEqual compares two pointers by pointed-to value.
func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// statesEqual reports whether two snapshots carry the same values. Used
// to suppress no-op dispatches.
func statesEqual(a, b State) bool {
	return ptrEqual(a.Principal, b.Principal) &&
		ptrEqual(a.Subscription, b.Subscription) &&
		a.UserState == b.UserState &&
		ptrEqual(a.Err, b.Err) &&
		a.IsLoading == b.IsLoading &&
		a.IsInitialized == b.IsInitialized
}
