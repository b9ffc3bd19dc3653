package domain

import (
	"regexp"
	"strings"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks the email shape before any provider call.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !emailRegex.MatchString(email) {
		return NewAuthError(CodeInvalidEmail, "")
	}
	return nil
}

// ValidateSignIn performs client-side checks for a sign-in attempt.
func ValidateSignIn(email, password string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return NewAuthError(CodeWrongPassword, "empty password")
	}
	return nil
}

// ValidateRegistration performs client-side checks for a sign-up attempt.
// These never reach the provider: password confirmation and terms
// acceptance are purely local concerns.
func ValidateRegistration(email, password, confirm string, termsAccepted bool) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if len(password) < MinPasswordLength {
		return NewAuthError(CodeWeakPassword, "")
	}
	if password != confirm {
		return NewAuthError(CodePasswordMismatch, "")
	}
	if !termsAccepted {
		return NewAuthError(CodeTermsNotAccepted, "")
	}
	return nil
}
