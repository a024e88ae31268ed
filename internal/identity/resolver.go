package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Resolver maintains the resolved identity for one session context. It is the
// single writer of that state: sign-in and sign-out only delegate to the
// credential store, and every state change flows through the session-change
// subscription, so there is exactly one code path for becoming authenticated.
type Resolver struct {
	store    CredentialStore
	roles    RoleDirectory
	profiles ProfileDirectory

	mu         sync.Mutex
	current    Identity
	gen        uint64
	passCancel context.CancelFunc
	subs       map[uint64]chan Identity
	nextSub    uint64

	ready     chan struct{}
	readyOnce sync.Once

	stop    context.CancelFunc
	unsub   func()
	done    chan struct{}
	started bool
}

func NewResolver(store CredentialStore, roles RoleDirectory, profiles ProfileDirectory) *Resolver {
	return &Resolver{
		store:    store,
		roles:    roles,
		profiles: profiles,
		current:  Identity{Loading: true},
		subs:     make(map[uint64]chan Identity),
		ready:    make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Initialize loads the current session, subscribes to session changes and
// starts the first resolution pass. Loading stays true until that pass
// completes. Callers must pair Initialize with Close.
func (r *Resolver) Initialize(ctx context.Context) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return errors.New("resolver already initialized")
	}
	r.started = true
	r.mu.Unlock()

	sess, err := r.store.CurrentSession(ctx)
	if err != nil {
		return fmt.Errorf("load current session: %w", err)
	}

	changes, unsub := r.store.SessionChanges()
	loopCtx, cancel := context.WithCancel(context.Background())
	r.stop = cancel
	r.unsub = unsub

	r.apply(loopCtx, sess)
	go r.loop(loopCtx, changes)
	return nil
}

// Close unsubscribes from session changes and stops the event loop. Safe to
// call once after a successful Initialize.
func (r *Resolver) Close() {
	if r.stop == nil {
		return
	}
	r.unsub()
	r.stop()
	<-r.done
}

// Identity returns the current resolved state. Readers must treat the
// contained pointers as read-only.
func (r *Resolver) Identity() Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Subscribe registers a consumer of identity snapshots. The current snapshot
// is delivered immediately; slow consumers may miss intermediate snapshots
// but always receive the latest state eventually.
func (r *Resolver) Subscribe() (<-chan Identity, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSub
	r.nextSub++
	ch := make(chan Identity, 8)
	ch <- r.current
	r.subs[id] = ch

	unsubscribe := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if c, ok := r.subs[id]; ok {
			delete(r.subs, id)
			close(c)
		}
	}
	return ch, unsubscribe
}

// WaitReady blocks until the first resolution pass has completed, i.e. the
// first time loading flips to false.
func (r *Resolver) WaitReady(ctx context.Context) error {
	select {
	case <-r.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SignIn delegates credential verification to the store. On success the
// resulting session-change event drives resolution; on failure no state is
// touched.
func (r *Resolver) SignIn(ctx context.Context, email, password string) error {
	if _, err := r.store.SignIn(ctx, email, password); err != nil {
		return err
	}
	return nil
}

// SignUp creates the account with its role and profile. It does not sign the
// user in; callers are expected to sign in separately.
func (r *Resolver) SignUp(ctx context.Context, p SignUpParams) error {
	_, err := r.store.SignUp(ctx, p)
	return err
}

// SignOut delegates to the store; the nil-session event clears state.
// Signing out while already signed out is a no-op.
func (r *Resolver) SignOut(ctx context.Context) error {
	return r.store.SignOut(ctx)
}

func (r *Resolver) loop(ctx context.Context, changes <-chan *Session) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			return
		case sess, ok := <-changes:
			if !ok {
				return
			}
			r.apply(ctx, sess)
		}
	}
}

// apply starts a new resolution pass for the given session. Any in-flight
// pass is cancelled; its results would belong to a superseded session and
// must never clobber fresher state.
func (r *Resolver) apply(parent context.Context, sess *Session) {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	if r.passCancel != nil {
		r.passCancel()
		r.passCancel = nil
	}

	if sess == nil {
		r.current = Identity{}
		r.markReadyLocked()
		r.broadcastLocked()
		r.mu.Unlock()
		return
	}

	r.current = Identity{
		User:    &User{ID: sess.UserID, Email: sess.Email},
		Loading: true,
	}
	passCtx, cancel := context.WithCancel(parent)
	r.passCancel = cancel
	r.broadcastLocked()
	r.mu.Unlock()

	go r.resolve(passCtx, gen, sess)
}

// resolve fetches role and profile concurrently; they depend only on the user
// id and may complete in either order. Both must have arrived before loading
// flips to false.
func (r *Resolver) resolve(ctx context.Context, gen uint64, sess *Session) {
	var (
		role    Role
		profile *Profile
		wg      sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		got, err := r.roles.RoleFor(ctx, sess.UserID)
		if err != nil {
			if !errors.Is(err, ErrRoleNotAssigned) && !errors.Is(err, context.Canceled) {
				slog.Warn("role lookup failed", "user_id", sess.UserID, "error", err)
			}
			return
		}
		role = got
	}()
	go func() {
		defer wg.Done()
		got, err := r.profiles.ProfileFor(ctx, sess.UserID)
		if err != nil {
			if !errors.Is(err, ErrProfileNotFound) && !errors.Is(err, context.Canceled) {
				slog.Warn("profile lookup failed", "user_id", sess.UserID, "error", err)
			}
			return
		}
		profile = got
	}()
	wg.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		// A newer session event arrived while this pass was in flight.
		return
	}
	r.current.Role = role
	r.current.Profile = profile
	r.current.Loading = false
	r.markReadyLocked()
	r.broadcastLocked()
}

func (r *Resolver) markReadyLocked() {
	r.readyOnce.Do(func() { close(r.ready) })
}

func (r *Resolver) broadcastLocked() {
	for _, ch := range r.subs {
		// Drop the oldest buffered snapshot rather than block the writer.
		select {
		case ch <- r.current:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- r.current:
			default:
			}
		}
	}
}
