package eventbus

import (
	"context"
	"testing"

	"github.com/halcyonapp/halcyon/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInProcessBus_DeliversToMatchingHandlers(t *testing.T) {
	bus := NewInProcessBus(nil)

	var got []string
	bus.Subscribe("session.user_state.changed", func(ctx context.Context, key string, payload []byte) {
		got = append(got, key)
	})

	require.NoError(t, bus.Publish(context.Background(), "session.user_state.changed", []byte(`{}`)))
	require.NoError(t, bus.Publish(context.Background(), "billing.subscription.updated", []byte(`{}`)))

	assert.Equal(t, []string{"session.user_state.changed"}, got)
}

func TestInProcessBus_WildcardSubscription(t *testing.T) {
	bus := NewInProcessBus(nil)

	count := 0
	bus.Subscribe("", func(ctx context.Context, key string, payload []byte) {
		count++
	})

	require.NoError(t, bus.Publish(context.Background(), "a", nil))
	require.NoError(t, bus.Publish(context.Background(), "b", nil))

	assert.Equal(t, 2, count)
}

func TestPublishDomainEvent(t *testing.T) {
	bus := NewInProcessBus(nil)

	var payloads [][]byte
	bus.Subscribe("session.principal.changed", func(ctx context.Context, key string, payload []byte) {
		payloads = append(payloads, payload)
	})

	event := domain.NewBaseEvent("u1", "session.principal.changed")
	require.NoError(t, PublishDomainEvent(context.Background(), bus, event))

	require.Len(t, payloads, 1)
	assert.Contains(t, string(payloads[0]), `"subject_id":"u1"`)
}
