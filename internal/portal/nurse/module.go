package nurse

import (
	"github.com/gofiber/fiber/v2"
	"github.com/veinsight/portal-backend/internal/config"
	"github.com/veinsight/portal-backend/internal/identity"
	"github.com/veinsight/portal-backend/internal/models"
	"gorm.io/gorm"
)

type Module struct{}

func New() *Module { return &Module{} }

func (m *Module) ID() string { return "nurse" }

func (m *Module) AllowedRoles() []identity.Role {
	return []identity.Role{identity.RoleNurse}
}

func (m *Module) Models() []interface{} {
	return []interface{}{
		&models.NursePatient{},
		&models.PatientVitals{},
		&models.ProcedureNote{},
	}
}

func (m *Module) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewService(db)
	handler := NewHandler(service)

	router.Get("/queue", handler.AppointmentQueue)

	router.Get("/patients", handler.ListPatients)
	router.Post("/patients", handler.AssignPatient)

	router.Get("/vitals", handler.ListVitals)
	router.Post("/vitals", handler.RecordVitals)

	router.Get("/procedures", handler.ListProcedures)
	router.Post("/procedures", handler.CreateProcedure)

	router.Get("/injection/:patientID", handler.InjectionGuidance)
}
