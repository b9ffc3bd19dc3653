package provider

import (
	"sync"

	"github.com/halcyonapp/halcyon/internal/identity/domain"
)

// notifier fans identity change notifications out to subscribers.
type notifier struct {
	mu   sync.Mutex
	seq  int
	subs map[int]domain.ChangeCallback
}

func (n *notifier) subscribe(cb domain.ChangeCallback) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs == nil {
		n.subs = make(map[int]domain.ChangeCallback)
	}
	id := n.seq
	n.seq++
	n.subs[id] = cb

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier) notify(p *domain.Principal) {
	n.mu.Lock()
	cbs := make([]domain.ChangeCallback, 0, len(n.subs))
	for _, cb := range n.subs {
		cbs = append(cbs, cb)
	}
	n.mu.Unlock()

	// Callbacks run outside the lock so a subscriber can unsubscribe
	// or re-enter the provider without deadlocking.
	for _, cb := range cbs {
		cb(p.Clone())
	}
}
