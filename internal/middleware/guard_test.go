package middleware

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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/veinsight/portal-backend/internal/authctx"
	"github.com/veinsight/portal-backend/internal/identity"
	"github.com/veinsight/portal-backend/internal/metrics"
)

type stubRoles struct {
	role identity.Role
	err  error
}

func (s stubRoles) RoleFor(_ context.Context, _ uuid.UUID) (identity.Role, error) {
	return s.role, s.err
}

func testCollector() *metrics.Collector {
	return metrics.NewCollector(prometheus.NewRegistry())
}

// withToken simulates the JWT middleware having verified a token.
func withToken(userID uuid.UUID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := jwt.MapClaims{
			"sub":   userID.String(),
			"email": "u@example.com",
			"exp":   float64(time.Now().Add(time.Hour).Unix()),
		}
		c.Locals("user", jwt.NewWithClaims(jwt.SigningMethodHS256, claims))
		return c.Next()
	}
}

func TestRoleRequiredAdmits(t *testing.T) {
	app := fiber.New()
	userID := uuid.New()

	app.Get("/doctor",
		withToken(userID),
		RoleRequired(stubRoles{role: identity.RoleDoctor}, testCollector(), identity.RoleDoctor),
		func(c *fiber.Ctx) error {
			id, ok := authctx.Identity(c)
			if !ok || id.Role != identity.RoleDoctor {
				t.Errorf("identity not stored for downstream handlers: %+v", id)
			}
			return c.SendString("ok")
		},
	)

	resp, err := app.Test(httptest.NewRequest("GET", "/doctor", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRoleRequiredWrongRole(t *testing.T) {
	app := fiber.New()

	app.Get("/doctor",
		withToken(uuid.New()),
		RoleRequired(stubRoles{role: identity.RolePatient}, testCollector(), identity.RoleDoctor),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)

	resp, err := app.Test(httptest.NewRequest("GET", "/doctor", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "/not-authorized") {
		t.Fatalf("wrong-role denial must redirect to not-authorized, got %s", body)
	}
}

// A user with no role row is authenticated; denying them must not bounce
// them back to the sign-in page.
func TestRoleRequiredRolelessAccount(t *testing.T) {
	app := fiber.New()

	app.Get("/doctor",
		withToken(uuid.New()),
		RoleRequired(stubRoles{err: identity.ErrRoleNotAssigned}, testCollector(), identity.RoleDoctor),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)

	resp, err := app.Test(httptest.NewRequest("GET", "/doctor", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(body), "/auth") {
		t.Fatalf("roleless denial must not redirect to sign-in, got %s", body)
	}
}

func TestRoleRequiredNoToken(t *testing.T) {
	app := fiber.New()

	app.Get("/doctor",
		RoleRequired(stubRoles{role: identity.RoleDoctor}, testCollector(), identity.RoleDoctor),
		func(c *fiber.Ctx) error { return c.SendString("ok") },
	)

	resp, err := app.Test(httptest.NewRequest("GET", "/doctor", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "/auth") {
		t.Fatalf("unauthenticated denial must redirect to sign-in, got %s", body)
	}
}
