package deeplink

import (
	"context"
	"log/slog"
	"sync"

	sessionDomain "github.com/halcyonapp/halcyon/internal/session/domain"
	"github.com/halcyonapp/halcyon/internal/storage"
)

// Navigator is the port routes are dispatched against once it reports
// ready.
type Navigator interface {
	Navigate(ctx context.Context, route Route)
}

// SessionReader is the slice of session state routing needs.
type SessionReader interface {
	EntryScreen() sessionDomain.Screen
}

// Router feeds parsed links to the navigator. Links arriving before the
// navigator is ready are queued and replayed in arrival order; none are
// dropped.
type Router struct {
	parser  *Parser
	gateway storage.Gateway
	session SessionReader
	nav     Navigator
	logger  *slog.Logger

	mu    sync.Mutex
	ready bool
	queue []Route
}

// NewRouter creates a deep-link router. Dispatch is held until SetReady.
func NewRouter(parser *Parser, gateway storage.Gateway, session SessionReader, nav Navigator, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		parser:  parser,
		gateway: gateway,
		session: session,
		nav:     nav,
		logger:  logger,
	}
}

// Handle parses and dispatches a runtime link event.
func (r *Router) Handle(ctx context.Context, raw string) (Route, error) {
	return r.handle(ctx, raw, false)
}

// HandleInitial parses and dispatches the cold-start link. It shares
// the exact parse and dispatch path with Handle.
func (r *Router) HandleInitial(ctx context.Context, raw string) (Route, error) {
	return r.handle(ctx, raw, true)
}

func (r *Router) handle(ctx context.Context, raw string, initial bool) (Route, error) {
	route, err := r.parser.Parse(raw)
	if err != nil {
		r.logger.Warn("deep link rejected",
			"initial", initial,
			"error", err,
		)
		return nil, err
	}

	if invite, ok := route.(ReferralInviteRoute); ok {
		if err := r.gateway.Set(ctx, storage.KeyPendingReferrer, invite.ReferrerID); err != nil {
			r.logger.Warn("failed to persist pending referrer", "error", err)
		}
	}

	r.mu.Lock()
	if !r.ready {
		r.queue = append(r.queue, route)
		r.mu.Unlock()
		r.logger.Debug("deep link queued", "route", route.Name())
		return route, nil
	}
	r.mu.Unlock()

	r.dispatch(ctx, route)
	return route, nil
}

// SetReady marks the navigator ready and replays queued links in order.
func (r *Router) SetReady(ctx context.Context) {
	r.mu.Lock()
	r.ready = true
	queued := r.queue
	r.queue = nil
	r.mu.Unlock()

	for _, route := range queued {
		r.dispatch(ctx, route)
	}
}

// EntryScreen resolves the cold-start screen for launches without a
// link, based on the current user state.
func (r *Router) EntryScreen() sessionDomain.Screen {
	return r.session.EntryScreen()
}

func (r *Router) dispatch(ctx context.Context, route Route) {
	r.logger.Info("deep link dispatched", "route", route.Name())
	r.nav.Navigate(ctx, route)
}
