package portal

import (
	"github.com/gofiber/fiber/v2"
	"github.com/veinsight/portal-backend/internal/config"
	"github.com/veinsight/portal-backend/internal/identity"
	"gorm.io/gorm"
)

// Module defines the interface every portal area must implement.
type Module interface {
	// ID returns the area identifier and URL prefix (doctor, nurse, ...).
	ID() string

	// AllowedRoles returns the roles admitted past the area's guard.
	// Empty means the area is public.
	AllowedRoles() []identity.Role

	// Models returns the GORM model pointers this area owns for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts the area's routes on the given group. The group
	// is already prefixed with /api/<id> and guarded per AllowedRoles.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
