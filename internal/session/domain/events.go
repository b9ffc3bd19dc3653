package domain

import (
	billingDomain "github.com/halcyonapp/halcyon/internal/billing/domain"
	sharedDomain "github.com/halcyonapp/halcyon/internal/shared/domain"
)

// Routing keys for session domain events.
const (
	RoutingKeyPrincipalChanged    = "session.principal.changed"
	RoutingKeyUserStateChanged    = "session.user_state.changed"
	RoutingKeySubscriptionUpdated = "billing.subscription.updated"
)

// PrincipalChanged fires when the authenticated principal is replaced.
type PrincipalChanged struct {
	sharedDomain.BaseEvent
	SignedIn bool `json:"signed_in"`
}

// NewPrincipalChanged creates a principal change event. subjectID is
// empty on sign-out.
func NewPrincipalChanged(subjectID string, signedIn bool) PrincipalChanged {
	return PrincipalChanged{
		BaseEvent: sharedDomain.NewBaseEvent(subjectID, RoutingKeyPrincipalChanged),
		SignedIn:  signedIn,
	}
}

// UserStateChanged fires when the derived user state flips.
type UserStateChanged struct {
	sharedDomain.BaseEvent
	Previous UserState `json:"previous"`
	Current  UserState `json:"current"`
}

// NewUserStateChanged creates a user-state transition event.
func NewUserStateChanged(subjectID string, previous, current UserState) UserStateChanged {
	return UserStateChanged{
		BaseEvent: sharedDomain.NewBaseEvent(subjectID, RoutingKeyUserStateChanged),
		Previous:  previous,
		Current:   current,
	}
}

// SubscriptionUpdated fires when the subscription record changes.
type SubscriptionUpdated struct {
	sharedDomain.BaseEvent
	Plan   billingDomain.Plan               `json:"plan"`
	Status billingDomain.SubscriptionStatus `json:"status"`
}

// NewSubscriptionUpdated creates a subscription change event.
func NewSubscriptionUpdated(subjectID string, plan billingDomain.Plan, status billingDomain.SubscriptionStatus) SubscriptionUpdated {
	return SubscriptionUpdated{
		BaseEvent: sharedDomain.NewBaseEvent(subjectID, RoutingKeySubscriptionUpdated),
		Plan:      plan,
		Status:    status,
	}
}
