package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlan(t *testing.T) {
	for _, valid := range []string{"monthly", "quarterly", "yearly"} {
		plan, err := ParsePlan(valid)
		require.NoError(t, err)
		assert.Equal(t, Plan(valid), plan)
	}

	_, err := ParsePlan("weekly")
	require.Error(t, err)

	_, err = ParsePlan("")
	require.Error(t, err)
}

func TestPlan_PeriodEnd(t *testing.T) {
	from := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		plan     Plan
		expected time.Time
	}{
		{PlanMonthly, time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)},
		{PlanQuarterly, time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)},
		{PlanYearly, time.Date(2027, 1, 15, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.plan), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.plan.PeriodEnd(from))
		})
	}
}

func TestPaymentRetryBoundaries(t *testing.T) {
	assert.True(t, CanRetry(0))
	assert.True(t, CanRetry(1))
	assert.True(t, CanRetry(2))
	assert.False(t, CanRetry(3))
	assert.False(t, CanRetry(4))

	assert.False(t, IsFinalAttempt(0))
	assert.False(t, IsFinalAttempt(1))
	assert.True(t, IsFinalAttempt(2))
	assert.False(t, IsFinalAttempt(3))
}
