package store

import (
	"context"

	sessionDomain "github.com/halcyonapp/halcyon/internal/session/domain"
	"github.com/halcyonapp/halcyon/internal/shared/infrastructure/eventbus"
)

// effect is a side effect keyed to a state transition. Effects run after
// the dispatch commits, outside the store lock; their failures are
// logged and never fed back into state.
type effect struct {
	name string
	when func(prev, next State) bool
	run  func(ctx context.Context, s *Store, prev, next State)
}

var effects = []effect{
	{
		name: "persist-principal",
		when: func(prev, next State) bool {
			return !ptrEqual(prev.Principal, next.Principal)
		},
		run: func(ctx context.Context, s *Store, prev, next State) {
			var err error
			if next.Principal == nil {
				err = s.records.ClearPrincipal(ctx)
			} else {
				err = s.records.SavePrincipal(ctx, next.Principal)
			}
			if err != nil {
				s.logger.Warn("failed to persist principal", "error", err)
			}
		},
	},
	{
		name: "publish-principal-changed",
		when: func(prev, next State) bool {
			return !ptrEqual(prev.Principal, next.Principal)
		},
		run: func(ctx context.Context, s *Store, prev, next State) {
			var subjectID string
			if next.Principal != nil {
				subjectID = next.Principal.ID
			}
			event := sessionDomain.NewPrincipalChanged(subjectID, next.Principal != nil)
			if err := eventbus.PublishDomainEvent(ctx, s.publisher, event); err != nil {
				s.logger.Warn("failed to publish principal change", "error", err)
			}
		},
	},
	{
		name: "persist-subscription",
		when: func(prev, next State) bool {
			return !ptrEqual(prev.Subscription, next.Subscription)
		},
		run: func(ctx context.Context, s *Store, prev, next State) {
			if err := s.records.SaveSubscription(ctx, next.Subscription); err != nil {
				s.logger.Warn("failed to persist subscription", "error", err)
			}
		},
	},
	{
		name: "publish-subscription-updated",
		when: func(prev, next State) bool {
			return next.Subscription != nil && !ptrEqual(prev.Subscription, next.Subscription)
		},
		run: func(ctx context.Context, s *Store, prev, next State) {
			sub := next.Subscription
			event := sessionDomain.NewSubscriptionUpdated(sub.UserID, sub.Plan, sub.Status)
			if err := eventbus.PublishDomainEvent(ctx, s.publisher, event); err != nil {
				s.logger.Warn("failed to publish subscription update", "error", err)
			}
		},
	},
	{
		name: "publish-user-state-changed",
		when: func(prev, next State) bool {
			return prev.UserState != next.UserState
		},
		run: func(ctx context.Context, s *Store, prev, next State) {
			var subjectID string
			if next.Principal != nil {
				subjectID = next.Principal.ID
			}
			event := sessionDomain.NewUserStateChanged(subjectID, prev.UserState, next.UserState)
			if err := eventbus.PublishDomainEvent(ctx, s.publisher, event); err != nil {
				s.logger.Warn("failed to publish user state change", "error", err)
			}
			s.logger.Info("user state changed",
				"previous", string(prev.UserState),
				"current", string(next.UserState),
			)
		},
	},
}

func (s *Store) runEffects(ctx context.Context, prev, next State) {
	for _, e := range effects {
		if e.when(prev, next) {
			e.run(ctx, s, prev, next)
		}
	}
}
