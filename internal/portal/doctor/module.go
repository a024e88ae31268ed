package doctor

import (
	"github.com/gofiber/fiber/v2"
	"github.com/veinsight/portal-backend/internal/config"
	"github.com/veinsight/portal-backend/internal/identity"
	"github.com/veinsight/portal-backend/internal/models"
	"gorm.io/gorm"
)

type Module struct{}

func New() *Module { return &Module{} }

func (m *Module) ID() string { return "doctor" }

func (m *Module) AllowedRoles() []identity.Role {
	return []identity.Role{identity.RoleDoctor}
}

func (m *Module) Models() []interface{} {
	return []interface{}{
		&models.PatientDoctor{},
		&models.Prescription{},
		&models.DietPlan{},
		&models.HealthRecommendation{},
		&models.VeinAnalysis{},
	}
}

func (m *Module) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	service := NewService(db)
	handler := NewHandler(service)

	router.Get("/patients", handler.ListPatients)
	router.Post("/patients", handler.AssignPatient)

	router.Get("/appointments", handler.ListAppointments)
	router.Put("/appointments/:id/status", handler.UpdateAppointmentStatus)

	router.Get("/reports", handler.ListReports)
	router.Post("/reports", handler.CreateReport)

	router.Get("/vein-analyses", handler.ListVeinAnalyses)
	router.Post("/vein-analyses", handler.CreateVeinAnalysis)

	router.Get("/prescriptions", handler.ListPrescriptions)
	router.Post("/prescriptions", handler.CreatePrescription)
	router.Put("/prescriptions/:id", handler.UpdatePrescription)
	router.Delete("/prescriptions/:id", handler.DeletePrescription)

	router.Get("/diet-plans", handler.ListDietPlans)
	router.Post("/diet-plans", handler.CreateDietPlan)
	router.Put("/diet-plans/:id", handler.UpdateDietPlan)
	router.Delete("/diet-plans/:id", handler.DeleteDietPlan)

	router.Get("/recommendations", handler.ListRecommendations)
	router.Post("/recommendations", handler.CreateRecommendation)
}
