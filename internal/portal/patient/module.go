package patient

import (
	"github.com/gofiber/fiber/v2"
	"github.com/veinsight/portal-backend/internal/config"
	"github.com/veinsight/portal-backend/internal/identity"
	"github.com/veinsight/portal-backend/internal/models"
	"gorm.io/gorm"
)

type Module struct{}

func New() *Module { return &Module{} }

func (m *Module) ID() string { return "patient" }

func (m *Module) AllowedRoles() []identity.Role {
	return []identity.Role{identity.RolePatient}
}

func (m *Module) Models() []interface{} {
	return []interface{}{
		&models.Appointment{},
		&models.MedicalReport{},
	}
}

func (m *Module) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewService(db)
	handler := NewHandler(service)

	router.Get("/doctors", handler.ListDoctors)

	router.Get("/appointments", handler.ListAppointments)
	router.Post("/appointments", handler.BookAppointment)
	router.Put("/appointments/:id/cancel", handler.CancelAppointment)

	router.Get("/reports", handler.ListReports)
	router.Get("/scans", handler.ListScans)
	router.Get("/history", handler.HealthHistory)
	router.Get("/wellness", handler.Wellness)
}
