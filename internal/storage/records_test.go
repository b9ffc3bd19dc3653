package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	billingDomain "github.com/halcyonapp/halcyon/internal/billing/domain"
	identityDomain "github.com/halcyonapp/halcyon/internal/identity/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecords_SubscriptionRoundTrip(t *testing.T) {
	records := NewRecords(NewMemoryGateway())
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	sub := &billingDomain.Subscription{
		ID:                 uuid.New(),
		UserID:             "u1",
		Plan:               billingDomain.PlanQuarterly,
		Status:             billingDomain.SubscriptionActive,
		CurrentPeriodStart: start,
		CurrentPeriodEnd:   start.AddDate(0, 3, 0),
		Amount:             2999,
		Currency:           "USD",
		CreatedAt:          start,
		UpdatedAt:          start,
	}

	require.NoError(t, records.SaveSubscription(ctx, sub))

	loaded, err := records.LoadSubscription(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	// Period fields must come back as date-typed values equal to the
	// originals, not strings.
	assert.True(t, loaded.CurrentPeriodStart.Equal(sub.CurrentPeriodStart))
	assert.True(t, loaded.CurrentPeriodEnd.Equal(sub.CurrentPeriodEnd))
	assert.Equal(t, sub.ID, loaded.ID)
	assert.Equal(t, sub.Plan, loaded.Plan)
	assert.Equal(t, sub.Status, loaded.Status)
	assert.Equal(t, sub.Amount, loaded.Amount)
}

func TestRecords_PrincipalRoundTrip(t *testing.T) {
	records := NewRecords(NewMemoryGateway())
	ctx := context.Background()

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	principal := &identityDomain.Principal{
		ID:            "u1",
		Email:         "user@example.com",
		EmailVerified: true,
		Provider:      identityDomain.ProviderGoogle,
		CreatedAt:     created,
		LastLoginAt:   created.Add(48 * time.Hour),
		Device:        identityDomain.DeviceMetadata{DeviceID: "dev-1", Platform: "linux", AppVersion: "1.2.0"},
	}

	require.NoError(t, records.SavePrincipal(ctx, principal))

	loaded, err := records.LoadPrincipal(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, principal.ID, loaded.ID)
	assert.True(t, loaded.CreatedAt.Equal(principal.CreatedAt))
	assert.True(t, loaded.LastLoginAt.Equal(principal.LastLoginAt))
	assert.Equal(t, principal.Device, loaded.Device)
}

func TestRecords_LoadMissingReturnsNil(t *testing.T) {
	records := NewRecords(NewMemoryGateway())
	ctx := context.Background()

	principal, err := records.LoadPrincipal(ctx)
	require.NoError(t, err)
	assert.Nil(t, principal)

	sub, err := records.LoadSubscription(ctx)
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestRecords_ClearPrincipalRetainsSubscription(t *testing.T) {
	records := NewRecords(NewMemoryGateway())
	ctx := context.Background()

	require.NoError(t, records.SavePrincipal(ctx, &identityDomain.Principal{ID: "u1"}))
	require.NoError(t, records.SaveSubscription(ctx, &billingDomain.Subscription{
		ID:     uuid.New(),
		UserID: "u1",
		Status: billingDomain.SubscriptionActive,
	}))

	require.NoError(t, records.ClearPrincipal(ctx))

	principal, err := records.LoadPrincipal(ctx)
	require.NoError(t, err)
	assert.Nil(t, principal)

	sub, err := records.LoadSubscription(ctx)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, billingDomain.SubscriptionActive, sub.Status)
}

func TestRecords_SaveNilRemoves(t *testing.T) {
	records := NewRecords(NewMemoryGateway())
	ctx := context.Background()

	require.NoError(t, records.SavePrincipal(ctx, &identityDomain.Principal{ID: "u1"}))
	require.NoError(t, records.SavePrincipal(ctx, nil))

	principal, err := records.LoadPrincipal(ctx)
	require.NoError(t, err)
	assert.Nil(t, principal)
}

func TestMemoryGateway(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	_, err := g.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, g.Set(ctx, "k", "v"))
	value, err := g.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)

	require.NoError(t, g.Remove(ctx, "k"))
	_, err = g.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing a missing key is fine.
	require.NoError(t, g.Remove(ctx, "k"))
}
