// Package deeplink parses and routes inbound app links. Only links
// matching the configured custom scheme or the HTTPS domain whitelist
// are dispatched; everything else is rejected before any handler runs.
package deeplink

// Route is a parsed deep-link destination.
type Route interface {
	// Name identifies the route family.
	Name() string
}

// EmailVerificationRoute confirms an email address. Token is optional;
// some providers embed it in the verification email instead.
type EmailVerificationRoute struct {
	Email string
	Token string
}

func (EmailVerificationRoute) Name() string { return "verify-email" }

// ForgotPasswordRoute opens the password reset flow, optionally
// pre-filled with an email.
type ForgotPasswordRoute struct {
	Email string
}

func (ForgotPasswordRoute) Name() string { return "forgot-password" }

// PaymentSuccessRoute acknowledges a completed payment.
type PaymentSuccessRoute struct {
	SubscriptionID string
}

func (PaymentSuccessRoute) Name() string { return "payment-success" }

// PaymentFailedRoute reports a failed payment attempt.
type PaymentFailedRoute struct {
	ErrorCode  string
	PlanID     string
	RetryCount int
}

func (PaymentFailedRoute) Name() string { return "payment-failed" }

// ReferralInviteRoute carries an inviter's referral id into
// registration.
type ReferralInviteRoute struct {
	ReferrerID string
}

func (ReferralInviteRoute) Name() string { return "referral-invite" }
