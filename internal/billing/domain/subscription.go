package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus represents the current billing state.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionFailed    SubscriptionStatus = "failed"
)

// Subscription represents a user's subscription. Records are never
// deleted, only status-transitioned.
type Subscription struct {
	ID                    uuid.UUID          `json:"id"`
	UserID                string             `json:"userId"`
	Plan                  Plan               `json:"plan"`
	Status                SubscriptionStatus `json:"status"`
	CurrentPeriodStart    time.Time          `json:"currentPeriodStart"`
	CurrentPeriodEnd      time.Time          `json:"currentPeriodEnd"`
	CancelAtPeriodEnd     bool               `json:"cancelAtPeriodEnd"`
	BillingCustomerID     string             `json:"billingCustomerId,omitempty"`
	BillingSubscriptionID string             `json:"billingSubscriptionId,omitempty"`
	PriceID               string             `json:"priceId,omitempty"`
	Amount                int64              `json:"amount"`
	Currency              string             `json:"currency"`
	CreatedAt             time.Time          `json:"createdAt"`
	UpdatedAt             time.Time          `json:"updatedAt"`
}

// Clone returns a copy of the subscription.
func (s *Subscription) Clone() *Subscription {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}
