// Package domain holds the derived user-state model: the pure function
// that maps identity and entitlement facts into the flow a user is
// entitled to see.
package domain

import (
	billingDomain "github.com/halcyonapp/halcyon/internal/billing/domain"
	identityDomain "github.com/halcyonapp/halcyon/internal/identity/domain"
)

// UserState is the derived access state. It is always a pure function of
// (principal, subscription) and is never stored or mutated independently.
type UserState string

const (
	StateUnregistered             UserState = "UNREGISTERED"
	StateRegisteredNoSubscription UserState = "REGISTERED_NO_SUBSCRIPTION"
	StatePaymentFailed            UserState = "PAYMENT_FAILED"
	StateActiveSubscriber         UserState = "ACTIVE_SUBSCRIBER"
	StateExpiredSubscriber        UserState = "EXPIRED_SUBSCRIBER"

	// StateAccountSuspended is declared for forward compatibility. No
	// transition produces it today; do not synthesize one.
	StateAccountSuspended UserState = "ACCOUNT_SUSPENDED"
)

// Resolve derives the user state. Total over all input pairs: a nil
// principal wins regardless of subscription contents, and any
// subscription status outside the known set degrades to expired.
func Resolve(principal *identityDomain.Principal, sub *billingDomain.Subscription) UserState {
	if principal == nil {
		return StateUnregistered
	}
	if sub == nil {
		return StateRegisteredNoSubscription
	}
	switch sub.Status {
	case billingDomain.SubscriptionActive:
		return StateActiveSubscriber
	case billingDomain.SubscriptionFailed:
		return StatePaymentFailed
	default:
		return StateExpiredSubscriber
	}
}
