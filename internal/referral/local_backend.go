package referral

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// LocalBackend is an in-memory referral backend for development. It is
// deterministic per process; nothing persists.
type LocalBackend struct {
	mu      sync.Mutex
	seq     int
	history []Record
}

// NewLocalBackend creates the in-memory backend.
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{}
}

// GenerateLink mints a process-local referral link.
func (b *LocalBackend) GenerateLink(ctx context.Context, token string) (*Link, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	id := fmt.Sprintf("local-%d", b.seq)
	return &Link{
		ReferralID: id,
		URL:        "https://halcyon.app/invite/" + id,
	}, nil
}

// ProcessReward records a completed referral in the local history.
func (b *LocalBackend) ProcessReward(ctx context.Context, token, referrerID, deviceID, platform string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.history = append(b.history, Record{
		RefereeEmail:  "referee@" + referrerID,
		Status:        RecordCompleted,
		InvitedAt:     now,
		CompletedAt:   &now,
		RewardGranted: true,
	})
	return nil
}

// Stats aggregates the local history.
func (b *LocalBackend) Stats(ctx context.Context, token string) (*Stats, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stats := &Stats{History: append([]Record(nil), b.history...)}
	for _, record := range b.history {
		stats.TotalInvites++
		switch record.Status {
		case RecordCompleted:
			stats.Completed++
		case RecordPending:
			stats.Pending++
		}
		if record.RewardGranted {
			stats.TotalRewards++
		}
	}
	return stats, nil
}

var _ Backend = (*LocalBackend)(nil)
