package diseases

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/veinsight/portal-backend/internal/config"
	"github.com/veinsight/portal-backend/internal/identity"
	"gorm.io/gorm"
)

type Module struct{}

func New() *Module { return &Module{} }

func (m *Module) ID() string { return "diseases" }

// AllowedRoles is empty: the disease library is public.
func (m *Module) AllowedRoles() []identity.Role { return nil }

func (m *Module) Models() []interface{} {
	return []interface{}{&Disease{}}
}

func (m *Module) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	if err := Seed(db); err != nil {
		slog.Error("failed to seed disease library", "error", err)
	}

	service := NewService(db)
	handler := NewHandler(service)

	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
}
