package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/veinsight/portal-backend/internal/authctx"
	"github.com/veinsight/portal-backend/internal/dto"
	"github.com/veinsight/portal-backend/internal/identity"
	"github.com/veinsight/portal-backend/internal/navigation"
	"github.com/veinsight/portal-backend/internal/services"
)

const resolveTimeout = 5 * time.Second

// SessionHandler serves the resolved-identity surface: a one-shot snapshot,
// a server-sent-events stream of identity changes, and the role's sidebar.
type SessionHandler struct {
	authService *services.AuthService
	roles       identity.RoleDirectory
	profiles    identity.ProfileDirectory
}

func NewSessionHandler(authService *services.AuthService, roles identity.RoleDirectory, profiles identity.ProfileDirectory) *SessionHandler {
	return &SessionHandler{authService: authService, roles: roles, profiles: profiles}
}

func (h *SessionHandler) newResolver(sess *identity.Session) *identity.Resolver {
	return identity.NewResolver(h.authService.SessionView(sess), h.roles, h.profiles)
}

// Get resolves the caller's identity and returns the finished snapshot. It
// waits for the resolution pass, so the response never has loading true
// unless the directories are slower than the resolve timeout.
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	sess, err := authctx.Session(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized", RedirectTo: "/auth",
		})
	}

	r := h.newResolver(sess)
	if err := r.Initialize(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to resolve session",
		})
	}
	defer r.Close()

	ctx, cancel := context.WithTimeout(c.Context(), resolveTimeout)
	defer cancel()
	if err := r.WaitReady(ctx); err != nil {
		// Return the loading snapshot rather than failing; the client can
		// retry or fall back to the stream.
		slog.Warn("session resolution timed out", "user_id", sess.UserID)
	}

	return c.JSON(dto.NewSessionResponse(r.Identity()))
}

// Stream pushes identity snapshots over server-sent events. The first event
// is the current state; later events follow session changes, so a sign-out
// in another tab reaches this one. The stream ends when the client goes away
// or the access token expires; the client reconnects with a fresh token.
func (h *SessionHandler) Stream(c *fiber.Ctx) error {
	sess, err := authctx.Session(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized", RedirectTo: "/auth",
		})
	}

	tokenTTL := time.Until(sess.ExpiresAt)
	if tokenTTL <= 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized", RedirectTo: "/auth",
		})
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	r := h.newResolver(sess)
	// The stream outlives the request handler, so the resolver is driven by
	// a background context and torn down when the writer exits.
	if err := r.Initialize(context.Background()); err != nil {
		r.Close()
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to resolve session",
		})
	}

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer r.Close()

		snapshots, unsubscribe := r.Subscribe()
		defer unsubscribe()

		keepAlive := time.NewTicker(30 * time.Second)
		defer keepAlive.Stop()

		// The stream never outlives the access token that opened it.
		expiry := time.NewTimer(tokenTTL)
		defer expiry.Stop()

		for {
			select {
			case <-expiry.C:
				return
			case snap, ok := <-snapshots:
				if !ok {
					return
				}
				if !writeIdentityEvent(w, snap) {
					return
				}
			case <-keepAlive.C:
				if _, err := w.WriteString(": keep-alive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})
	return nil
}

func writeIdentityEvent(w *bufio.Writer, snap identity.Identity) bool {
	payload, err := json.Marshal(dto.NewSessionResponse(snap))
	if err != nil {
		return false
	}
	if _, err := w.WriteString("event: identity\ndata: " + string(payload) + "\n\n"); err != nil {
		return false
	}
	return w.Flush() == nil
}

// Navigation returns the sidebar for the caller's role. A roleless account
// gets an empty menu, not an error.
func (h *SessionHandler) Navigation(c *fiber.Ctx) error {
	sess, err := authctx.Session(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized", RedirectTo: "/auth",
		})
	}

	role, err := h.roles.RoleFor(c.Context(), sess.UserID)
	if err != nil && !errors.Is(err, identity.ErrRoleNotAssigned) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Role lookup unavailable, try again",
		})
	}

	entries := navigation.ForRole(role)
	resp := fiber.Map{"entries": entries}
	if role.Valid() {
		resp["role"] = role.String()
	} else {
		resp["role"] = nil
	}
	return c.JSON(resp)
}
