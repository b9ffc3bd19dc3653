package deeplink

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var (
	// ErrNotAllowed rejects links outside the scheme/domain whitelist.
	ErrNotAllowed = errors.New("link origin not allowed")

	// ErrUnknownRoute rejects links with no matching route family.
	ErrUnknownRoute = errors.New("unknown route")

	// ErrMissingParam rejects links missing a required parameter.
	ErrMissingParam = errors.New("missing required parameter")

	// ErrMalformedParam rejects links whose parameter fails to parse.
	ErrMalformedParam = errors.New("malformed parameter")
)

// Parser turns raw link strings into routes. The custom scheme and the
// HTTPS domain whitelist come from configuration; nothing else passes.
type Parser struct {
	scheme  string
	domains map[string]bool
}

// NewParser creates a parser for the given scheme and allowed HTTPS
// domains.
func NewParser(scheme string, domains []string) *Parser {
	allowed := make(map[string]bool, len(domains))
	for _, d := range domains {
		allowed[strings.ToLower(d)] = true
	}
	return &Parser{scheme: strings.ToLower(scheme), domains: allowed}
}

// Parse validates the link origin and resolves its route. Parameters
// are URL-decoded per segment.
func (p *Parser) Parse(raw string) (Route, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAllowed, err)
	}

	var segments []string
	switch strings.ToLower(u.Scheme) {
	case p.scheme:
		// halcyon://verify-email/a/b parses the route name as host.
		segments = append([]string{u.Host}, splitPath(u)...)
	case "https":
		if !p.domains[strings.ToLower(u.Host)] {
			return nil, fmt.Errorf("%w: domain %q", ErrNotAllowed, u.Host)
		}
		segments = splitPath(u)
	default:
		return nil, fmt.Errorf("%w: scheme %q", ErrNotAllowed, u.Scheme)
	}

	if len(segments) == 0 || segments[0] == "" {
		return nil, ErrUnknownRoute
	}
	return p.resolve(segments[0], segments[1:])
}

func splitPath(u *url.URL) []string {
	trimmed := strings.Trim(u.EscapedPath(), "/")
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, "/")
	for i, part := range parts {
		if decoded, err := url.PathUnescape(part); err == nil {
			parts[i] = decoded
		}
	}
	return parts
}

func (p *Parser) resolve(name string, params []string) (Route, error) {
	param := func(i int) string {
		if i < len(params) {
			return params[i]
		}
		return ""
	}

	switch name {
	case "verify-email":
		if param(0) == "" {
			return nil, fmt.Errorf("%w: verify-email needs an email", ErrMissingParam)
		}
		return EmailVerificationRoute{Email: param(0), Token: param(1)}, nil

	case "forgot-password":
		return ForgotPasswordRoute{Email: param(0)}, nil

	case "payment":
		switch param(0) {
		case "success":
			if param(1) == "" {
				return nil, fmt.Errorf("%w: payment/success needs a subscription id", ErrMissingParam)
			}
			return PaymentSuccessRoute{SubscriptionID: param(1)}, nil
		case "failed":
			if param(1) == "" || param(2) == "" || param(3) == "" {
				return nil, fmt.Errorf("%w: payment/failed needs errorCode, planId, retryCount", ErrMissingParam)
			}
			retryCount, err := strconv.Atoi(param(3))
			if err != nil {
				return nil, fmt.Errorf("%w: retryCount %q", ErrMalformedParam, param(3))
			}
			return PaymentFailedRoute{ErrorCode: param(1), PlanID: param(2), RetryCount: retryCount}, nil
		}
		return nil, fmt.Errorf("%w: payment/%s", ErrUnknownRoute, param(0))

	case "invite":
		if param(0) == "" {
			return nil, fmt.Errorf("%w: invite needs a referrer id", ErrMissingParam)
		}
		return ReferralInviteRoute{ReferrerID: param(0)}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownRoute, name)
}
