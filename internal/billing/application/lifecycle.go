// Package application holds the subscription lifecycle flows. The
// billing backend is opaque: this layer owns plan parsing, period math,
// and pushing the resulting record into session state.
package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/halcyonapp/halcyon/internal/billing/domain"
	identityDomain "github.com/halcyonapp/halcyon/internal/identity/domain"
)

// SessionGateway is the slice of session state billing needs. The
// session store implements it.
type SessionGateway interface {
	CurrentPrincipal() *identityDomain.Principal
	CurrentSubscription() *domain.Subscription
	ApplySubscription(ctx context.Context, sub *domain.Subscription)
}

// planAmounts are the fallback prices, in cents, used when no billing
// backend is wired in.
var planAmounts = map[domain.Plan]int64{
	domain.PlanMonthly:   999,
	domain.PlanQuarterly: 2499,
	domain.PlanYearly:    7999,
}

// LifecycleService drives subscription creation and payment retries.
type LifecycleService struct {
	session   SessionGateway
	confirmer domain.PaymentConfirmer
	logger    *slog.Logger
}

// NewLifecycleService creates a lifecycle service. confirmer may be nil
// in local mode; payments are then assumed confirmed.
func NewLifecycleService(session SessionGateway, confirmer domain.PaymentConfirmer, logger *slog.Logger) *LifecycleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LifecycleService{
		session:   session,
		confirmer: confirmer,
		logger:    logger,
	}
}

// CreateSubscription creates a subscription for the signed-in user. A
// payment failure still produces a record, status failed, so the
// derived user state reflects the failed attempt.
func (s *LifecycleService) CreateSubscription(ctx context.Context, planID, paymentMethodRef string) (*domain.Subscription, error) {
	principal := s.session.CurrentPrincipal()
	if principal == nil {
		return nil, identityDomain.NewAuthError(identityDomain.CodeUserNotFound, "no signed-in user")
	}

	plan, err := domain.ParsePlan(planID)
	if err != nil {
		return nil, identityDomain.NewAuthError(identityDomain.CodeUnknown, err.Error())
	}

	now := time.Now()
	sub := &domain.Subscription{
		ID:                 uuid.New(),
		UserID:             principal.ID,
		Plan:               plan,
		Status:             domain.SubscriptionActive,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   plan.PeriodEnd(now),
		Amount:             planAmounts[plan],
		Currency:           "usd",
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if s.confirmer != nil {
		confirmation, err := s.confirmer.ConfirmPayment(ctx, principal.ID, plan, paymentMethodRef)
		if err != nil {
			sub.Status = domain.SubscriptionFailed
			sub.UpdatedAt = time.Now()
			s.session.ApplySubscription(ctx, sub)
			s.logger.Warn("payment confirmation failed",
				"plan", string(plan),
				"error", err,
			)
			return nil, err
		}
		sub.BillingCustomerID = confirmation.BillingCustomerID
		sub.BillingSubscriptionID = confirmation.BillingSubscriptionID
		sub.PriceID = confirmation.PriceID
		sub.Amount = confirmation.Amount
		sub.Currency = confirmation.Currency
	}

	s.session.ApplySubscription(ctx, sub)
	s.logger.Info("subscription created",
		"plan", string(plan),
		"period_end", sub.CurrentPeriodEnd,
	)
	return sub, nil
}

// RetryPayment retries a failed payment on the existing record. Past
// the retry cap the caller must route back to plan selection.
func (s *LifecycleService) RetryPayment(ctx context.Context, paymentMethodRef string, retryCount int) (*domain.Subscription, error) {
	principal := s.session.CurrentPrincipal()
	if principal == nil {
		return nil, identityDomain.NewAuthError(identityDomain.CodeUserNotFound, "no signed-in user")
	}

	current := s.session.CurrentSubscription()
	if current == nil || current.Status != domain.SubscriptionFailed {
		return nil, identityDomain.NewAuthError(identityDomain.CodeUnknown, "no failed payment to retry")
	}

	if !domain.CanRetry(retryCount) {
		return nil, &domain.PaymentError{
			Code:        domain.PaymentCardDeclined,
			Message:     "payment retry limit reached",
			Recoverable: false,
			RetryCount:  retryCount,
		}
	}

	if domain.IsFinalAttempt(retryCount) {
		s.logger.Warn("final payment attempt", "retry_count", retryCount)
	}

	sub := current.Clone()
	if s.confirmer != nil {
		confirmation, err := s.confirmer.ConfirmPayment(ctx, principal.ID, sub.Plan, paymentMethodRef)
		if err != nil {
			return nil, err
		}
		sub.BillingCustomerID = confirmation.BillingCustomerID
		sub.BillingSubscriptionID = confirmation.BillingSubscriptionID
		sub.PriceID = confirmation.PriceID
		sub.Amount = confirmation.Amount
		sub.Currency = confirmation.Currency
	}

	now := time.Now()
	sub.Status = domain.SubscriptionActive
	sub.CurrentPeriodStart = now
	sub.CurrentPeriodEnd = sub.Plan.PeriodEnd(now)
	sub.UpdatedAt = now

	s.session.ApplySubscription(ctx, sub)
	s.logger.Info("payment retry succeeded", "retry_count", retryCount)
	return sub, nil
}

// CancelSubscription is not wired to a billing backend yet.
func (s *LifecycleService) CancelSubscription(ctx context.Context) error {
	return s.notImplemented("cancel_subscription")
}

// UpdateSubscription is not wired to a billing backend yet.
func (s *LifecycleService) UpdateSubscription(ctx context.Context, planID string) error {
	return s.notImplemented("update_subscription")
}

// RestorePurchases is not wired to a billing backend yet.
func (s *LifecycleService) RestorePurchases(ctx context.Context) error {
	return s.notImplemented("restore_purchases")
}

func (s *LifecycleService) notImplemented(operation string) error {
	s.logger.Warn("billing operation not implemented", "operation", operation)
	return identityDomain.NewAuthError(identityDomain.CodeNotImplemented, operation)
}
