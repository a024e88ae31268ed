package identity

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

type stubStore struct {
	sess     *Session
	changes  chan *Session
	signOuts atomic.Int32
}

func newStubStore(sess *Session) *stubStore {
	return &stubStore{sess: sess, changes: make(chan *Session, 8)}
}

func (s *stubStore) CurrentSession(_ context.Context) (*Session, error) { return s.sess, nil }

func (s *stubStore) SessionChanges() (<-chan *Session, func()) {
	return s.changes, func() {}
}

func (s *stubStore) SignIn(_ context.Context, email, _ string) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    uuid.New(),
		Email:     email,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	s.sess = sess
	s.changes <- sess
	return sess, nil
}

func (s *stubStore) SignUp(_ context.Context, _ SignUpParams) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (s *stubStore) SignOut(_ context.Context) error {
	s.signOuts.Add(1)
	s.sess = nil
	s.changes <- nil
	return nil
}

type stubRoles struct {
	role  Role
	err   error
	delay time.Duration
}

func (s stubRoles) RoleFor(ctx context.Context, _ uuid.UUID) (Role, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return RoleUnknown, ctx.Err()
		}
	}
	return s.role, s.err
}

type stubProfiles struct {
	profile *Profile
	err     error
}

func (s stubProfiles) ProfileFor(_ context.Context, _ uuid.UUID) (*Profile, error) {
	return s.profile, s.err
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func session() *Session {
	return &Session{
		ID:        uuid.NewString(),
		UserID:    uuid.New(),
		Email:     "doc@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// While role and profile are in flight the identity must report loading with
// the user already set, so a guard evaluates to pending instead of denying.
func TestResolverLoadingBeforeFirstPass(t *testing.T) {
	store := newStubStore(session())
	r := NewResolver(store, stubRoles{role: RoleDoctor, delay: 80 * time.Millisecond}, stubProfiles{})

	if err := r.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	id := r.Identity()
	if !id.Loading {
		t.Fatal("identity should be loading right after initialize")
	}
	if id.User == nil {
		t.Fatal("user should be set from the session before role arrives")
	}
	if got := Evaluate(id, RoleDoctor); got != DecisionPending {
		t.Fatalf("guard during load = %v, want %v", got, DecisionPending)
	}

	if err := r.WaitReady(context.Background()); err != nil {
		t.Fatal(err)
	}
	id = r.Identity()
	if id.Loading {
		t.Fatal("loading should be false after the pass completes")
	}
	if id.Role != RoleDoctor {
		t.Fatalf("role = %q, want %q", id.Role, RoleDoctor)
	}
}

func TestResolverUnauthenticated(t *testing.T) {
	store := newStubStore(nil)
	r := NewResolver(store, stubRoles{}, stubProfiles{})

	if err := r.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err := r.WaitReady(context.Background()); err != nil {
		t.Fatal(err)
	}

	id := r.Identity()
	if id.User != nil || id.Role != RoleUnknown || id.Profile != nil || id.Loading {
		t.Fatalf("expected empty identity, got %+v", id)
	}
	if got := Evaluate(id, RoleDoctor); got != DecisionDeniedUnauth {
		t.Fatalf("guard = %v, want %v", got, DecisionDeniedUnauth)
	}
}

// A sign-out that lands while the role fetch is still running must win: the
// slow fetch belongs to a superseded session and its result is discarded.
func TestResolverSignOutDuringSlowResolve(t *testing.T) {
	store := newStubStore(session())
	r := NewResolver(store, stubRoles{role: RoleDoctor, delay: 100 * time.Millisecond}, stubProfiles{})

	if err := r.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err := r.SignOut(context.Background()); err != nil {
		t.Fatal(err)
	}

	waitFor(t, time.Second, func() bool {
		id := r.Identity()
		return id.User == nil && !id.Loading
	})

	// Outlive the delayed fetch; its result must not resurrect the session.
	time.Sleep(150 * time.Millisecond)
	id := r.Identity()
	if id.User != nil || id.Role != RoleUnknown {
		t.Fatalf("stale pass clobbered sign-out: %+v", id)
	}
}

func TestResolverSignInResolvesRoleAndProfile(t *testing.T) {
	store := newStubStore(nil)
	profile := &Profile{FullName: "Dr. Mehta", Specialty: "Phlebology"}
	r := NewResolver(store, stubRoles{role: RoleDoctor}, stubProfiles{profile: profile})

	if err := r.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err := r.WaitReady(context.Background()); err != nil {
		t.Fatal(err)
	}
	if r.Identity().User != nil {
		t.Fatal("should start signed out")
	}

	if err := r.SignIn(context.Background(), "doc@example.com", "secret"); err != nil {
		t.Fatal(err)
	}

	waitFor(t, time.Second, func() bool {
		id := r.Identity()
		return id.User != nil && !id.Loading
	})

	id := r.Identity()
	if id.Role != RoleDoctor {
		t.Fatalf("role = %q, want %q", id.Role, RoleDoctor)
	}
	if id.Profile == nil || id.Profile.FullName != "Dr. Mehta" {
		t.Fatalf("profile = %+v, want full name Dr. Mehta", id.Profile)
	}
}

// An account whose role row is missing resolves as authenticated with no
// role: denied by every role gate but never treated as signed out.
func TestResolverRolelessAccount(t *testing.T) {
	store := newStubStore(session())
	r := NewResolver(store, stubRoles{err: ErrRoleNotAssigned}, stubProfiles{err: ErrProfileNotFound})

	if err := r.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err := r.WaitReady(context.Background()); err != nil {
		t.Fatal(err)
	}

	id := r.Identity()
	if id.User == nil {
		t.Fatal("user must stay set for a roleless account")
	}
	if id.Role != RoleUnknown {
		t.Fatalf("role = %q, want unknown", id.Role)
	}
	if got := Evaluate(id, RoleDoctor, RoleNurse, RolePatient); got != DecisionDeniedWrongRole {
		t.Fatalf("guard = %v, want %v", got, DecisionDeniedWrongRole)
	}
}

func TestResolverSignOutIdempotent(t *testing.T) {
	store := newStubStore(session())
	r := NewResolver(store, stubRoles{role: RolePatient}, stubProfiles{})

	if err := r.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if err := r.WaitReady(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := r.SignOut(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := r.SignOut(context.Background()); err != nil {
		t.Fatalf("second sign-out should be a no-op, got %v", err)
	}

	waitFor(t, time.Second, func() bool { return r.Identity().User == nil })
	if store.signOuts.Load() != 2 {
		t.Fatalf("expected 2 sign-out calls, got %d", store.signOuts.Load())
	}
}

func TestResolverSubscribeDeliversSnapshots(t *testing.T) {
	store := newStubStore(nil)
	r := NewResolver(store, stubRoles{role: RoleNurse}, stubProfiles{})

	if err := r.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if err := r.WaitReady(context.Background()); err != nil {
		t.Fatal(err)
	}

	snapshots, unsubscribe := r.Subscribe()
	defer unsubscribe()

	// First delivery is the current (signed out) state.
	select {
	case snap := <-snapshots:
		if snap.User != nil {
			t.Fatalf("first snapshot should be signed out, got %+v", snap)
		}
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot")
	}

	if err := r.SignIn(context.Background(), "nurse@example.com", "secret"); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(time.Second)
	for {
		select {
		case snap := <-snapshots:
			if snap.User != nil && !snap.Loading && snap.Role == RoleNurse {
				return
			}
		case <-deadline:
			t.Fatal("never observed the resolved signed-in snapshot")
		}
	}
}

func TestResolverInitializeTwice(t *testing.T) {
	store := newStubStore(nil)
	r := NewResolver(store, stubRoles{}, stubProfiles{})

	if err := r.Initialize(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if err := r.Initialize(context.Background()); err == nil {
		t.Fatal("second initialize must fail")
	} else if errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected error kind: %v", err)
	}
}
