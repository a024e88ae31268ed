package doctor

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/veinsight/portal-backend/internal/authctx"
	"github.com/veinsight/portal-backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// patientIDQuery parses the optional patient_id filter.
func patientIDQuery(c *fiber.Ctx) (*uuid.UUID, error) {
	raw := c.Query("patient_id")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (h *Handler) ListPatients(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	patients, err := h.service.ListPatients(c.Context(), doctorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve patients",
		})
	}
	return c.JSON(fiber.Map{"error": false, "patients": patients})
}

func (h *Handler) AssignPatient(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	var req struct {
		PatientID uuid.UUID `json:"patient_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.PatientID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "patient_id is required",
		})
	}

	link, err := h.service.AssignPatient(c.Context(), doctorID, req.PatientID)
	if err != nil {
		if errors.Is(err, ErrAlreadyAssigned) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to assign patient",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "assignment": link})
}

func (h *Handler) ListAppointments(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	appts, err := h.service.ListAppointments(c.Context(), doctorID, c.Query("status"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve appointments",
		})
	}
	return c.JSON(fiber.Map{"error": false, "appointments": appts})
}

func (h *Handler) UpdateAppointmentStatus(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	apptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid appointment ID",
		})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "status is required",
		})
	}

	appt, err := h.service.UpdateAppointmentStatus(c.Context(), doctorID, apptID, req.Status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "Appointment not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"error": false, "appointment": appt})
}

func (h *Handler) ListReports(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}
	patientID, err := patientIDQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid patient_id",
		})
	}

	reports, err := h.service.ListReports(c.Context(), doctorID, patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve reports",
		})
	}
	return c.JSON(fiber.Map{"error": false, "reports": reports})
}

func (h *Handler) CreateReport(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	var report models.MedicalReport
	if err := c.BodyParser(&report); err != nil || report.PatientID == uuid.Nil || report.Title == "" || report.FileURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "patient_id, title and file_url are required",
		})
	}

	if err := h.service.CreateReport(c.Context(), doctorID, &report); err != nil {
		return writeServiceError(c, err, "Failed to create report")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "report": report})
}

func (h *Handler) ListVeinAnalyses(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}
	patientID, err := patientIDQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid patient_id",
		})
	}

	analyses, err := h.service.ListVeinAnalyses(c.Context(), doctorID, patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve vein analyses",
		})
	}
	return c.JSON(fiber.Map{"error": false, "analyses": analyses})
}

func (h *Handler) CreateVeinAnalysis(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	var analysis models.VeinAnalysis
	if err := c.BodyParser(&analysis); err != nil || analysis.PatientID == uuid.Nil || analysis.ImageURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "patient_id and image_url are required",
		})
	}

	if err := h.service.CreateVeinAnalysis(c.Context(), doctorID, &analysis); err != nil {
		return writeServiceError(c, err, "Failed to create vein analysis")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "analysis": analysis})
}

func (h *Handler) ListPrescriptions(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}
	patientID, err := patientIDQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid patient_id",
		})
	}

	prescriptions, err := h.service.ListPrescriptions(c.Context(), doctorID, patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve prescriptions",
		})
	}
	return c.JSON(fiber.Map{"error": false, "prescriptions": prescriptions})
}

func (h *Handler) CreatePrescription(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	var p models.Prescription
	if err := c.BodyParser(&p); err != nil || p.PatientID == uuid.Nil || p.Diagnosis == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "patient_id and diagnosis are required",
		})
	}

	if err := h.service.CreatePrescription(c.Context(), doctorID, &p); err != nil {
		return writeServiceError(c, err, "Failed to create prescription")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "prescription": p})
}

func (h *Handler) UpdatePrescription(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid prescription ID",
		})
	}

	var update models.Prescription
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	p, err := h.service.UpdatePrescription(c.Context(), doctorID, id, &update)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "Prescription not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to update prescription",
		})
	}
	return c.JSON(fiber.Map{"error": false, "prescription": p})
}

func (h *Handler) DeletePrescription(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid prescription ID",
		})
	}

	if err := h.service.DeletePrescription(c.Context(), doctorID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "Prescription not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to delete prescription",
		})
	}
	return c.JSON(fiber.Map{"error": false, "message": "Prescription deleted"})
}

func (h *Handler) ListDietPlans(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}
	patientID, err := patientIDQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid patient_id",
		})
	}

	plans, err := h.service.ListDietPlans(c.Context(), doctorID, patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve diet plans",
		})
	}
	return c.JSON(fiber.Map{"error": false, "diet_plans": plans})
}

func (h *Handler) CreateDietPlan(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	var plan models.DietPlan
	if err := c.BodyParser(&plan); err != nil || plan.PatientID == uuid.Nil || plan.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "patient_id and title are required",
		})
	}

	if err := h.service.CreateDietPlan(c.Context(), doctorID, &plan); err != nil {
		return writeServiceError(c, err, "Failed to create diet plan")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "diet_plan": plan})
}

func (h *Handler) UpdateDietPlan(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid diet plan ID",
		})
	}

	var update models.DietPlan
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid request body",
		})
	}

	plan, err := h.service.UpdateDietPlan(c.Context(), doctorID, id, &update)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "Diet plan not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to update diet plan",
		})
	}
	return c.JSON(fiber.Map{"error": false, "diet_plan": plan})
}

func (h *Handler) DeleteDietPlan(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid diet plan ID",
		})
	}

	if err := h.service.DeleteDietPlan(c.Context(), doctorID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "Diet plan not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to delete diet plan",
		})
	}
	return c.JSON(fiber.Map{"error": false, "message": "Diet plan deleted"})
}

func (h *Handler) ListRecommendations(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}
	patientID, err := patientIDQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid patient_id",
		})
	}

	recs, err := h.service.ListRecommendations(c.Context(), doctorID, patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve recommendations",
		})
	}
	return c.JSON(fiber.Map{"error": false, "recommendations": recs})
}

func (h *Handler) CreateRecommendation(c *fiber.Ctx) error {
	doctorID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	var rec models.HealthRecommendation
	if err := c.BodyParser(&rec); err != nil || rec.PatientID == uuid.Nil || rec.Title == "" || rec.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "patient_id, title and description are required",
		})
	}

	if err := h.service.CreateRecommendation(c.Context(), doctorID, &rec); err != nil {
		return writeServiceError(c, err, "Failed to create recommendation")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "recommendation": rec})
}

func writeServiceError(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, ErrNotYourPatient) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": true, "message": fallback,
	})
}
