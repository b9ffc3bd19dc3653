package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode is the closed domain taxonomy for authentication failures.
// Provider-specific codes are normalized into this set at the adapter
// boundary; nothing downstream branches on provider shapes.
type ErrorCode string

const (
	CodeInvalidEmail     ErrorCode = "invalid-email"
	CodeUserNotFound     ErrorCode = "user-not-found"
	CodeWrongPassword    ErrorCode = "wrong-password"
	CodeEmailInUse       ErrorCode = "email-in-use"
	CodeWeakPassword     ErrorCode = "weak-password"
	CodeUserDisabled     ErrorCode = "user-disabled"
	CodeTooManyRequests  ErrorCode = "too-many-requests"
	CodePasswordMismatch ErrorCode = "password-mismatch"
	CodeTermsNotAccepted ErrorCode = "terms-not-accepted"
	CodeNoSession        ErrorCode = "no-session"
	CodeNotImplemented   ErrorCode = "not-implemented"
	CodeUnknown          ErrorCode = "unknown"
)

// messages maps domain codes to user-facing text. Raw provider text is
// never surfaced past the mapping table.
var messages = map[ErrorCode]string{
	CodeInvalidEmail:     "The email address is not valid.",
	CodeUserNotFound:     "No account exists for this email.",
	CodeWrongPassword:    "The password is incorrect.",
	CodeEmailInUse:       "An account already exists for this email.",
	CodeWeakPassword:     "The password is too weak.",
	CodeUserDisabled:     "This account has been disabled.",
	CodeTooManyRequests:  "Too many attempts. Please try again later.",
	CodePasswordMismatch: "The passwords do not match.",
	CodeTermsNotAccepted: "You must accept the terms to continue.",
	CodeNoSession:        "You must be signed in to do this.",
	CodeNotImplemented:   "This operation is not available yet.",
	CodeUnknown:          "Something went wrong. Please try again.",
}

// AuthError is a domain authentication error. Transient by design: it is
// cleared explicitly by the consumer, never expired implicitly.
type AuthError struct {
	Code        ErrorCode
	Message     string
	Details     string
	Timestamp   time.Time
	Recoverable bool
}

func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAuthError builds an AuthError for a domain code. Identity errors are
// always recoverable; the caller can retry after fixing the input.
func NewAuthError(code ErrorCode, details string) *AuthError {
	msg, ok := messages[code]
	if !ok {
		code = CodeUnknown
		msg = messages[CodeUnknown]
	}
	return &AuthError{
		Code:        code,
		Message:     msg,
		Details:     details,
		Timestamp:   time.Now(),
		Recoverable: true,
	}
}

// AsAuthError unwraps err into an AuthError, if it carries one.
func AsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}

// providerCodes maps identity-provider error codes into the domain
// taxonomy. Unknown codes fall through to CodeUnknown.
var providerCodes = map[string]ErrorCode{
	"auth/invalid-email":        CodeInvalidEmail,
	"auth/user-not-found":       CodeUserNotFound,
	"auth/wrong-password":       CodeWrongPassword,
	"auth/invalid-credential":   CodeWrongPassword,
	"auth/email-already-in-use": CodeEmailInUse,
	"auth/weak-password":        CodeWeakPassword,
	"auth/user-disabled":        CodeUserDisabled,
	"auth/too-many-requests":    CodeTooManyRequests,
}

// MapProviderError normalizes a provider error code into an AuthError.
// The raw provider error is preserved in Details for logging only.
func MapProviderError(providerCode string, raw error) *AuthError {
	code, ok := providerCodes[providerCode]
	if !ok {
		code = CodeUnknown
	}
	details := providerCode
	if raw != nil {
		details = fmt.Sprintf("%s: %v", providerCode, raw)
	}
	return NewAuthError(code, details)
}
