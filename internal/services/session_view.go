package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/veinsight/portal-backend/internal/identity"
)

// SessionView returns a credential-store view bound to one verified session,
// suitable for driving an identity.Resolver on that user's behalf. Session
// changes come from the shared bus, so a sign-out anywhere reaches every view
// of the same user.
func (s *AuthService) SessionView(sess *identity.Session) identity.CredentialStore {
	return &sessionView{auth: s, sess: sess}
}

type sessionView struct {
	auth *AuthService
	sess *identity.Session
}

func (v *sessionView) CurrentSession(ctx context.Context) (*identity.Session, error) {
	if v.sess == nil {
		return nil, nil
	}
	if !v.sess.ExpiresAt.IsZero() && time.Now().After(v.sess.ExpiresAt) {
		return nil, nil
	}
	return v.sess, nil
}

func (v *sessionView) SessionChanges() (<-chan *identity.Session, func()) {
	if v.sess == nil {
		ch := make(chan *identity.Session)
		return ch, func() {}
	}
	return v.auth.bus.Subscribe(v.sess.UserID)
}

func (v *sessionView) SignIn(ctx context.Context, email, password string) (*identity.Session, error) {
	_, sess, err := v.auth.Login(ctx, email, password)
	return sess, err
}

func (v *sessionView) SignUp(ctx context.Context, p identity.SignUpParams) (uuid.UUID, error) {
	return v.auth.Register(ctx, p)
}

func (v *sessionView) SignOut(ctx context.Context) error {
	if v.sess == nil {
		return nil
	}
	return v.auth.SignOutAll(ctx, v.sess.UserID)
}
