// Package statuswatch pushes account status changes to the account's open
// status streams. Delivery is last-write-wins: a slow subscriber only ever
// sees the newest snapshot, never a backlog.
package statuswatch

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/youthportal/internal/app/system/access"
	"github.com/dalemusser/youthportal/internal/domain/models"
)

// Snapshot is the routing-relevant state of one account.
type Snapshot struct {
	UserID          string             `json:"user_id"`
	Status          string             `json:"status"`
	UserType        string             `json:"user_type"`
	SurveyCompleted bool               `json:"survey_completed"`
	Destination     access.Destination `json:"destination"`
	At              time.Time          `json:"at"`
}

// SnapshotOf builds the snapshot for a. Deleted is signalled by a nil account.
func SnapshotOf(id string, a *models.Account) Snapshot {
	if a == nil {
		return Snapshot{UserID: id, Destination: access.Login, At: time.Now().UTC()}
	}
	return Snapshot{
		UserID:          a.ID,
		Status:          a.Status,
		UserType:        a.UserType,
		SurveyCompleted: a.SurveyCompleted,
		Destination:     access.RouteAccount(*a),
		At:              time.Now().UTC(),
	}
}

// Hub fans out snapshots to subscribers of one account.
type Hub interface {
	Subscribe(ctx context.Context, userID string) (*Subscription, error)
	Publish(ctx context.Context, snap Snapshot) error
	Close() error
}

// Subscription receives snapshots on C until Close is called.
type Subscription struct {
	C <-chan Snapshot

	ch    chan Snapshot
	once  sync.Once
	close func()
}

func newSubscription(onClose func()) *Subscription {
	ch := make(chan Snapshot, 1)
	return &Subscription{C: ch, ch: ch, close: onClose}
}

// offer replaces any undelivered snapshot with snap.
func (s *Subscription) offer(snap Snapshot) {
	for {
		select {
		case s.ch <- snap:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}

// Close unregisters the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		if s.close != nil {
			s.close()
		}
	})
}

// LocalHub delivers within one process.
type LocalHub struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

func NewLocalHub() *LocalHub {
	return &LocalHub{subs: map[string]map[*Subscription]struct{}{}}
}

var _ Hub = (*LocalHub)(nil)

func (h *LocalHub) Subscribe(_ context.Context, userID string) (*Subscription, error) {
	var sub *Subscription
	sub = newSubscription(func() { h.remove(userID, sub) })

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[userID] == nil {
		h.subs[userID] = map[*Subscription]struct{}{}
	}
	h.subs[userID][sub] = struct{}{}
	return sub, nil
}

func (h *LocalHub) remove(userID string, sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[userID], sub)
	if len(h.subs[userID]) == 0 {
		delete(h.subs, userID)
	}
}

func (h *LocalHub) Publish(_ context.Context, snap Snapshot) error {
	h.deliver(snap)
	return nil
}

func (h *LocalHub) deliver(snap Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[snap.UserID] {
		sub.offer(snap)
	}
}

// Subscribers reports how many subscriptions userID has.
func (h *LocalHub) Subscribers(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[userID])
}

func (h *LocalHub) Close() error { return nil }
