package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/veinsight/portal-backend/internal/identity"
)

func TestSessionBusDeliversToSubscriber(t *testing.T) {
	bus := NewSessionBus()
	userID := uuid.New()

	ch, unsubscribe := bus.Subscribe(userID)
	defer unsubscribe()

	sess := &identity.Session{ID: "s1", UserID: userID}
	bus.Publish(userID, sess)

	select {
	case got := <-ch:
		if got == nil || got.ID != "s1" {
			t.Fatalf("got %+v, want session s1", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestSessionBusScopesByUser(t *testing.T) {
	bus := NewSessionBus()
	alice, bob := uuid.New(), uuid.New()

	aliceCh, unsubAlice := bus.Subscribe(alice)
	defer unsubAlice()

	bus.Publish(bob, &identity.Session{ID: "bobs", UserID: bob})

	select {
	case got := <-aliceCh:
		t.Fatalf("alice received bob's event: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSessionBusNilMeansSignOut(t *testing.T) {
	bus := NewSessionBus()
	userID := uuid.New()

	ch, unsubscribe := bus.Subscribe(userID)
	defer unsubscribe()

	bus.Publish(userID, nil)

	select {
	case got := <-ch:
		if got != nil {
			t.Fatalf("got %+v, want nil sign-out event", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestSessionBusUnsubscribeClosesChannel(t *testing.T) {
	bus := NewSessionBus()
	userID := uuid.New()

	ch, unsubscribe := bus.Subscribe(userID)
	unsubscribe()

	if _, open := <-ch; open {
		t.Fatal("channel should be closed after unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	bus.Publish(userID, nil)
}

func TestSessionBusSkipsSlowSubscribers(t *testing.T) {
	bus := NewSessionBus()
	userID := uuid.New()

	_, unsubscribe := bus.Subscribe(userID)
	defer unsubscribe()

	// Overflow the buffer; Publish must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			bus.Publish(userID, &identity.Session{ID: "x", UserID: userID})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}
