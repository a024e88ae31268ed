// Package authctx extracts authenticated request state from Fiber context.
package authctx

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/veinsight/portal-backend/internal/identity"
)

const identityKey = "resolved_identity"

// Session builds the identity.Session for the request's verified JWT.
func Session(c *fiber.Ctx) (*identity.Session, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, errors.New("no token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("missing sub claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, err
	}

	sess := &identity.Session{
		ID:     sub,
		UserID: userID,
	}
	if email, ok := claims["email"].(string); ok {
		sess.Email = email
	}
	if jti, ok := claims["jti"].(string); ok && jti != "" {
		sess.ID = jti
	}
	if exp, ok := claims["exp"].(float64); ok {
		sess.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return sess, nil
}

// UserID extracts the user UUID from JWT claims in context.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	sess, err := Session(c)
	if err != nil {
		return uuid.Nil, err
	}
	return sess.UserID, nil
}

// SetIdentity stores the guard-admitted identity for downstream handlers.
func SetIdentity(c *fiber.Ctx, id identity.Identity) {
	c.Locals(identityKey, id)
}

// Identity returns the identity stored by the access guard, if any.
func Identity(c *fiber.Ctx) (identity.Identity, bool) {
	id, ok := c.Locals(identityKey).(identity.Identity)
	return id, ok
}
