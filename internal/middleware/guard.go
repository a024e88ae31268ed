package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/veinsight/portal-backend/internal/authctx"
	"github.com/veinsight/portal-backend/internal/dto"
	"github.com/veinsight/portal-backend/internal/identity"
	"github.com/veinsight/portal-backend/internal/metrics"
)

// RoleRequired admits only users whose directory role is one of allowed.
// It runs after JWTProtected, so a missing session here means a malformed
// token rather than a missing one. Unauthenticated requests get 401 with a
// redirect to the sign-in page; authenticated users with the wrong role (or
// no role at all) get 403 with a redirect to the not-authorized page, never
// a bounce back to sign-in.
func RoleRequired(roles identity.RoleDirectory, collector *metrics.Collector, allowed ...identity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := identity.Identity{}

		sess, err := authctx.Session(c)
		if err == nil && sess != nil {
			id.User = &identity.User{ID: sess.UserID, Email: sess.Email}

			role, err := roles.RoleFor(c.Context(), sess.UserID)
			switch {
			case err == nil:
				id.Role = role
			case errors.Is(err, identity.ErrRoleNotAssigned):
				// Roleless accounts stay authenticated and get denied below.
			default:
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
					Error:   true,
					Message: "Role lookup unavailable, try again",
				})
			}
		}

		decision := identity.Evaluate(id, allowed...)
		collector.RecordGuardDecision(decision.String())

		switch decision {
		case identity.DecisionAdmitted:
			authctx.SetIdentity(c, id)
			return c.Next()
		case identity.DecisionDeniedUnauth:
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:      true,
				Message:    "Authentication required",
				RedirectTo: "/auth",
			})
		default:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error:      true,
				Message:    "You do not have access to this area",
				RedirectTo: "/not-authorized",
			})
		}
	}
}
