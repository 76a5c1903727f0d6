package event

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// ChangeHub fans change signals out to the subscribers of an office within
// this process. Signals coalesce: a slow subscriber sees at most one pending
// signal, which is enough since every signal triggers a full refetch.
type ChangeHub struct {
	mu   sync.Mutex
	subs map[uuid.UUID]map[chan struct{}]struct{}
}

// NewChangeHub creates an empty hub
func NewChangeHub() *ChangeHub {
	return &ChangeHub{subs: make(map[uuid.UUID]map[chan struct{}]struct{})}
}

// Publish signals every subscriber of officeID without blocking
func (h *ChangeHub) Publish(_ context.Context, officeID uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[officeID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

// Subscribe registers a subscriber until ctx is done
func (h *ChangeHub) Subscribe(ctx context.Context, officeID uuid.UUID) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	if h.subs[officeID] == nil {
		h.subs[officeID] = make(map[chan struct{}]struct{})
	}
	h.subs[officeID][ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs[officeID], ch)
		if len(h.subs[officeID]) == 0 {
			delete(h.subs, officeID)
		}
		close(ch)
		h.mu.Unlock()
	}()
	return ch, nil
}

// Subscribers counts the live subscribers of an office
func (h *ChangeHub) Subscribers(officeID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[officeID])
}

// relay forwards a remote payload carrying an office id to the hub
func (h *ChangeHub) relay(ctx context.Context, payload string) bool {
	officeID, err := uuid.Parse(payload)
	if err != nil {
		return false
	}
	_ = h.Publish(ctx, officeID)
	return true
}
