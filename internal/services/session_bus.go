package services

import (
	"sync"

	"github.com/google/uuid"
	"github.com/veinsight/portal-backend/internal/identity"
)

// SessionBus fans session-change events out to per-user subscribers. A nil
// session means the user signed out. It is the server-side implementation of
// the credential store's session-change notification.
type SessionBus struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[uint64]chan *identity.Session
	next uint64
}

func NewSessionBus() *SessionBus {
	return &SessionBus{subs: make(map[uuid.UUID]map[uint64]chan *identity.Session)}
}

// Subscribe returns a channel of session events for one user plus an
// unsubscribe func. The channel is closed on unsubscribe.
func (b *SessionBus) Subscribe(userID uuid.UUID) (<-chan *identity.Session, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan *identity.Session, 4)
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[uint64]chan *identity.Session)
	}
	b.subs[userID][id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if userSubs, ok := b.subs[userID]; ok {
			if c, ok := userSubs[id]; ok {
				delete(userSubs, id)
				close(c)
			}
			if len(userSubs) == 0 {
				delete(b.subs, userID)
			}
		}
	}
	return ch, unsubscribe
}

// Publish delivers a session event to every subscriber of the user. Slow
// subscribers are skipped rather than blocking the publisher.
func (b *SessionBus) Publish(userID uuid.UUID, sess *identity.Session) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs[userID] {
		select {
		case ch <- sess:
		default:
		}
	}
}
