// Package store holds the session state reducer. All identity and
// subscription facts flow through a single dispatch loop that keeps the
// derived user state, persistence, and event publishing in step.
package store

import (
	"context"
	"log/slog"
	"sync"

	billingDomain "github.com/halcyonapp/halcyon/internal/billing/domain"
	identityDomain "github.com/halcyonapp/halcyon/internal/identity/domain"
	sessionDomain "github.com/halcyonapp/halcyon/internal/session/domain"
	"github.com/halcyonapp/halcyon/internal/shared/infrastructure/eventbus"
	"github.com/halcyonapp/halcyon/internal/storage"
)

// Listener receives a state snapshot after every effective dispatch.
// No-op dispatches are suppressed and do not reach listeners.
type Listener func(State)

// Store serializes all session state changes through one mutex. Effects
// and listener notification run outside the critical section.
type Store struct {
	provider  identityDomain.Provider
	records   *storage.Records
	publisher eventbus.Publisher
	logger    *slog.Logger

	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	seq       int
	noops     int

	firstSignal sync.Once
	unsubscribe func()
}

// NewStore creates a session store. The state starts loading until the
// identity provider delivers its first change notification.
func NewStore(provider identityDomain.Provider, records *storage.Records, publisher eventbus.Publisher, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.NewNoopPublisher(logger)
	}
	return &Store{
		provider:  provider,
		records:   records,
		publisher: publisher,
		logger:    logger,
		state: State{
			UserState: sessionDomain.StateUnregistered,
			IsLoading: true,
		},
		listeners: make(map[int]Listener),
	}
}

// Initialize restores the persisted subscription record and subscribes
// to identity change notifications. The principal is never rehydrated
// from storage; the provider is the sole authority on who is signed in.
func (s *Store) Initialize(ctx context.Context) error {
	sub, err := s.records.LoadSubscription(ctx)
	if err != nil {
		s.logger.Warn("failed to load persisted subscription", "error", err)
	} else if sub != nil {
		s.Dispatch(ctx, SetSubscription(sub))
	}

	s.unsubscribe = s.provider.OnChange(func(p *identityDomain.Principal) {
		s.Dispatch(context.Background(), SetPrincipal(p))
		s.firstSignal.Do(func() {
			s.Dispatch(context.Background(), SetLoading(false))
		})
	})

	s.Dispatch(ctx, SetInitialized())
	s.logger.Info("session store initialized", "has_subscription", sub != nil)
	return nil
}

// Dispatch applies an action, re-resolves the derived user state when
// identity or entitlement facts changed, and runs transition effects. A
// dispatch that leaves the state unchanged is dropped before effects or
// listeners see it.
func (s *Store) Dispatch(ctx context.Context, action Action) {
	s.mu.Lock()
	prev := s.state
	next := reduce(prev, action)

	switch action.Type {
	case ActionSetPrincipal, ActionSetSubscription, ActionReset:
		if resolved := sessionDomain.Resolve(next.Principal, next.Subscription); resolved != next.UserState {
			next = reduce(next, SetUserState(resolved))
		}
	}

	if statesEqual(prev, next) {
		s.noops++
		s.mu.Unlock()
		return
	}

	s.state = next
	snapshot := next.clone()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	s.runEffects(ctx, prev, next)
	for _, l := range listeners {
		l(snapshot)
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// NoopCount returns how many dispatches were dropped as no-ops.
func (s *Store) NoopCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.noops
}

// Subscribe registers a listener. The returned function unsubscribes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.seq++
	id := s.seq
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// SignIn authenticates with email and password. Validation failures and
// provider failures both land in state as an AuthError and are returned.
func (s *Store) SignIn(ctx context.Context, email, password string) error {
	if err := identityDomain.ValidateSignIn(email, password); err != nil {
		s.fail(ctx, err)
		return err
	}

	s.Dispatch(ctx, SetLoading(true))
	principal, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		s.Dispatch(ctx, SetLoading(false))
		s.fail(ctx, err)
		return err
	}

	s.Dispatch(ctx, SetPrincipal(principal))
	s.Dispatch(ctx, ClearError())
	s.Dispatch(ctx, SetLoading(false))
	s.logger.Info("user signed in", "user_id", principal.ID)
	return nil
}

// SignUp creates an account. Password confirmation and terms acceptance
// are checked locally and never reach the provider.
func (s *Store) SignUp(ctx context.Context, email, password, confirm string, termsAccepted bool) error {
	if err := identityDomain.ValidateRegistration(email, password, confirm, termsAccepted); err != nil {
		s.fail(ctx, err)
		return err
	}

	s.Dispatch(ctx, SetLoading(true))
	principal, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		s.Dispatch(ctx, SetLoading(false))
		s.fail(ctx, err)
		return err
	}

	s.Dispatch(ctx, SetPrincipal(principal))
	s.Dispatch(ctx, ClearError())
	s.Dispatch(ctx, SetLoading(false))
	s.logger.Info("user registered", "user_id", principal.ID)
	return nil
}

// SignOut ends the session. The subscription record survives sign-out in
// both state and storage.
func (s *Store) SignOut(ctx context.Context) error {
	if err := s.provider.SignOut(ctx); err != nil {
		s.fail(ctx, err)
		return err
	}

	s.Dispatch(ctx, Reset())
	s.logger.Info("user signed out")
	return nil
}

// SendPasswordReset triggers the provider's reset email.
func (s *Store) SendPasswordReset(ctx context.Context, email string) error {
	if err := identityDomain.ValidateEmail(email); err != nil {
		s.fail(ctx, err)
		return err
	}

	if err := s.provider.SendPasswordReset(ctx, email); err != nil {
		s.fail(ctx, err)
		return err
	}

	s.logger.Info("password reset requested")
	return nil
}

// ApplySubscription records a subscription change. Billing flows push
// updates through here so derived state and persistence stay in step.
func (s *Store) ApplySubscription(ctx context.Context, sub *billingDomain.Subscription) {
	s.Dispatch(ctx, SetSubscription(sub))
}

// CurrentPrincipal returns the signed-in principal, or nil.
func (s *Store) CurrentPrincipal() *identityDomain.Principal {
	return s.State().Principal
}

// CurrentSubscription returns the last-known subscription record, or nil.
func (s *Store) CurrentSubscription() *billingDomain.Subscription {
	return s.State().Subscription
}

// RequiresAuthFlow reports whether the current state belongs in the
// authentication flow.
func (s *Store) RequiresAuthFlow() bool {
	return sessionDomain.RequiresAuthFlow(s.State().UserState)
}

// EntryScreen returns the screen the current state lands on.
func (s *Store) EntryScreen() sessionDomain.Screen {
	return sessionDomain.EntryScreen(s.State().UserState)
}

// Close unsubscribes from identity change notifications.
func (s *Store) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Store) fail(ctx context.Context, err error) {
	authErr, ok := identityDomain.AsAuthError(err)
	if !ok {
		authErr = identityDomain.NewAuthError(identityDomain.CodeUnknown, err.Error())
	}
	s.logger.Warn("auth operation failed", "code", string(authErr.Code))
	s.Dispatch(ctx, SetError(authErr))
}
