package domain

import (
	"context"
	"fmt"
)

// PaymentErrorCode classifies payment failures.
type PaymentErrorCode string

const (
	PaymentCardDeclined      PaymentErrorCode = "card-declined"
	PaymentInsufficientFunds PaymentErrorCode = "insufficient-funds"
	PaymentExpiredCard       PaymentErrorCode = "expired-card"
	PaymentInvalidCard       PaymentErrorCode = "invalid-card"
	PaymentNetworkError      PaymentErrorCode = "network-error"
)

// MaxPaymentRetries caps payment retry attempts. Past the cap the caller
// must route back to plan selection instead of retrying.
const MaxPaymentRetries = 3

// PaymentError is a payment failure with retry bookkeeping.
type PaymentError struct {
	Code        PaymentErrorCode
	Message     string
	Recoverable bool
	RetryCount  int
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment failed: %s (attempt %d)", e.Code, e.RetryCount+1)
}

// CanRetry reports whether another payment attempt is allowed.
func CanRetry(retryCount int) bool {
	return retryCount < MaxPaymentRetries
}

// IsFinalAttempt reports whether the next retry is the last one allowed.
func IsFinalAttempt(retryCount int) bool {
	return retryCount == MaxPaymentRetries-1
}

// PaymentConfirmation is the billing backend's answer to a successful
// payment. The backend's wire format is opaque to this core.
type PaymentConfirmation struct {
	BillingCustomerID     string
	BillingSubscriptionID string
	PriceID               string
	Amount                int64
	Currency              string
}

// PaymentConfirmer is the port to the opaque billing backend.
type PaymentConfirmer interface {
	ConfirmPayment(ctx context.Context, principalID string, plan Plan, paymentMethodRef string) (*PaymentConfirmation, error)
}
