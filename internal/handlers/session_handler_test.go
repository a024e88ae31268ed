package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/veinsight/portal-backend/internal/config"
	"github.com/veinsight/portal-backend/internal/identity"
	"github.com/veinsight/portal-backend/internal/services"
)

type stubRoles struct {
	role identity.Role
	err  error
}

func (s stubRoles) RoleFor(_ context.Context, _ uuid.UUID) (identity.Role, error) {
	return s.role, s.err
}

type stubProfiles struct {
	profile *identity.Profile
	err     error
}

func (s stubProfiles) ProfileFor(_ context.Context, _ uuid.UUID) (*identity.Profile, error) {
	return s.profile, s.err
}

// withToken simulates the JWT middleware having verified a token with the
// given expiry.
func withToken(userID uuid.UUID, expiresAt time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := jwt.MapClaims{
			"sub":   userID.String(),
			"email": "u@example.com",
			"exp":   float64(expiresAt.Unix()),
		}
		c.Locals("user", jwt.NewWithClaims(jwt.SigningMethodHS256, claims))
		return c.Next()
	}
}

func newTestSessionHandler(roles identity.RoleDirectory, profiles identity.ProfileDirectory) *SessionHandler {
	auth := services.NewAuthService(nil, &config.Config{}, services.NewSessionBus(), nil)
	return NewSessionHandler(auth, roles, profiles)
}

func TestStreamRejectsExpiredToken(t *testing.T) {
	h := newTestSessionHandler(stubRoles{role: identity.RoleDoctor}, stubProfiles{})

	app := fiber.New()
	app.Get("/session/stream",
		withToken(uuid.New(), time.Now().Add(-time.Minute)),
		h.Stream,
	)

	resp, err := app.Test(httptest.NewRequest("GET", "/session/stream", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "/auth") {
		t.Fatalf("expired-token denial must redirect to sign-in, got %s", body)
	}
}

// An open stream must close when the access token expires, not idle forever
// on a credential the server no longer trusts.
func TestStreamEndsAtTokenExpiry(t *testing.T) {
	h := newTestSessionHandler(stubRoles{role: identity.RoleDoctor}, stubProfiles{})

	app := fiber.New()
	app.Get("/session/stream",
		withToken(uuid.New(), time.Now().Add(300*time.Millisecond)),
		h.Stream,
	)

	// Test returns only once the body stream finishes; a stream that ignored
	// expiry would still be open at the deadline and fail the request.
	resp, err := app.Test(httptest.NewRequest("GET", "/session/stream", nil), 5000)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "event: identity") {
		t.Fatalf("stream should deliver the initial identity snapshot, got %s", body)
	}
}

func TestGetRequiresToken(t *testing.T) {
	h := newTestSessionHandler(stubRoles{role: identity.RoleNurse}, stubProfiles{})

	app := fiber.New()
	app.Get("/session", h.Get)

	resp, err := app.Test(httptest.NewRequest("GET", "/session", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestGetResolvesIdentity(t *testing.T) {
	profile := &identity.Profile{FullName: "Nurse Okafor"}
	h := newTestSessionHandler(stubRoles{role: identity.RoleNurse}, stubProfiles{profile: profile})

	app := fiber.New()
	app.Get("/session",
		withToken(uuid.New(), time.Now().Add(time.Hour)),
		h.Get,
	)

	resp, err := app.Test(httptest.NewRequest("GET", "/session", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"role":"nurse"`) {
		t.Fatalf("response should carry the resolved role, got %s", body)
	}
	if !strings.Contains(string(body), "Nurse Okafor") {
		t.Fatalf("response should carry the resolved profile, got %s", body)
	}
}
