// Package referral talks to the referral backend. Every call is
// privileged: it requires a live principal and a freshly refreshed
// identity token. The server stays the authority on reward decisions;
// the client only attaches advisory signals.
package referral

import (
	"context"
	"time"
)

// RecordStatus is the lifecycle state of a single referral.
type RecordStatus string

const (
	RecordPending   RecordStatus = "pending"
	RecordCompleted RecordStatus = "completed"
	RecordExpired   RecordStatus = "expired"
)

// Link is a shareable referral link.
type Link struct {
	ReferralID string `json:"referralId"`
	URL        string `json:"url"`
}

// Record is one referred user's progress.
type Record struct {
	RefereeEmail  string       `json:"refereeEmail"`
	Status        RecordStatus `json:"status"`
	InvitedAt     time.Time    `json:"invitedAt"`
	CompletedAt   *time.Time   `json:"completedAt,omitempty"`
	RewardGranted bool         `json:"rewardGranted"`
}

// Stats aggregates a user's referral activity.
type Stats struct {
	TotalInvites int      `json:"totalInvites"`
	Completed    int      `json:"completed"`
	Pending      int      `json:"pending"`
	TotalRewards int64    `json:"totalRewards"`
	History      []Record `json:"history"`
}

// Backend is the port to the referral service.
type Backend interface {
	GenerateLink(ctx context.Context, token string) (*Link, error)
	ProcessReward(ctx context.Context, token, referrerID, deviceID, platform string) error
	Stats(ctx context.Context, token string) (*Stats, error)
}
