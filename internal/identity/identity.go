// Package identity owns the portal's session and role resolution core: the
// resolver that derives a consistent {user, role, profile, loading} view from
// credential-store session events, and the access guard that gates routes on
// that view.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrRoleNotAssigned is returned by a RoleDirectory when no role row
	// exists for the user. Distinct from a lookup failure.
	ErrRoleNotAssigned = errors.New("no role assigned to user")

	// ErrProfileNotFound is returned by a ProfileDirectory when the user has
	// no profile row.
	ErrProfileNotFound = errors.New("profile not found")
)

// Session is the resolver's view of a live authenticated session. The token
// itself stays with the credential store; the resolver only needs identity
// attributes and expiry.
type Session struct {
	ID        string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// User is the immutable identity record carried inside a resolved identity.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Profile is the display profile owned by a user.
type Profile struct {
	UserID    uuid.UUID `json:"user_id"`
	FullName  string    `json:"full_name"`
	Specialty string    `json:"specialty,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

// Identity is the resolved authentication state the rest of the application
// reads. While Loading is true, Role and Profile must be treated as unknown,
// not as absent.
type Identity struct {
	User    *User
	Role    Role
	Profile *Profile
	Loading bool
}

// SignUpParams carries everything needed to create an account: the credential
// pair plus the role and profile written alongside the user.
type SignUpParams struct {
	Email     string
	Password  string
	FullName  string
	Role      Role
	Specialty string
}

// CredentialStore is the resolver's view of the credential backend. Session
// state changes are delivered exclusively through the SessionChanges channel;
// SignIn and SignOut must trigger an event there rather than mutate resolver
// state directly.
type CredentialStore interface {
	SignUp(ctx context.Context, p SignUpParams) (uuid.UUID, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	CurrentSession(ctx context.Context) (*Session, error)

	// SessionChanges returns the event channel and an unsubscribe func.
	// A nil session on the channel means signed out.
	SessionChanges() (<-chan *Session, func())
}

// RoleDirectory maps a user id to their single role.
type RoleDirectory interface {
	RoleFor(ctx context.Context, userID uuid.UUID) (Role, error)
}

// ProfileDirectory maps a user id to their display profile.
type ProfileDirectory interface {
	ProfileFor(ctx context.Context, userID uuid.UUID) (*Profile, error)
}
