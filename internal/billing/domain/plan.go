package domain

import (
	"fmt"
	"time"
)

// Plan is a subscription billing interval.
type Plan string

const (
	PlanMonthly   Plan = "monthly"
	PlanQuarterly Plan = "quarterly"
	PlanYearly    Plan = "yearly"
)

// ParsePlan validates a plan identifier.
func ParsePlan(s string) (Plan, error) {
	switch Plan(s) {
	case PlanMonthly, PlanQuarterly, PlanYearly:
		return Plan(s), nil
	}
	return "", fmt.Errorf("invalid plan %q", s)
}

// PeriodEnd returns the end of a billing period starting at from.
func (p Plan) PeriodEnd(from time.Time) time.Time {
	switch p {
	case PlanQuarterly:
		return from.AddDate(0, 3, 0)
	case PlanYearly:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}
