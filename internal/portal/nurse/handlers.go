package nurse

import (
	"errors"
	"time"

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

func (h *Handler) AppointmentQueue(c *fiber.Ctx) error {
	day := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": "date must be YYYY-MM-DD",
			})
		}
		day = parsed
	}

	entries, err := h.service.AppointmentQueue(c.Context(), day)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve queue",
		})
	}
	return c.JSON(fiber.Map{"error": false, "queue": entries, "date": day.Format("2006-01-02")})
}

func (h *Handler) ListPatients(c *fiber.Ctx) error {
	nurseID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	patients, err := h.service.ListPatients(c.Context(), nurseID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve patients",
		})
	}
	return c.JSON(fiber.Map{"error": false, "patients": patients})
}

func (h *Handler) AssignPatient(c *fiber.Ctx) error {
	nurseID, err := authctx.UserID(c)
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

	link, err := h.service.AssignPatient(c.Context(), nurseID, req.PatientID)
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

func (h *Handler) ListVitals(c *fiber.Ctx) error {
	patientID, err := uuid.Parse(c.Query("patient_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "patient_id is required",
		})
	}

	vitals, err := h.service.ListVitals(c.Context(), patientID, c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve vitals",
		})
	}
	return c.JSON(fiber.Map{"error": false, "vitals": vitals})
}

func (h *Handler) RecordVitals(c *fiber.Ctx) error {
	nurseID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	var vitals models.PatientVitals
	if err := c.BodyParser(&vitals); err != nil || vitals.PatientID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "patient_id is required",
		})
	}

	if err := h.service.RecordVitals(c.Context(), nurseID, &vitals); err != nil {
		if errors.Is(err, ErrNotYourPatient) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to record vitals",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "vitals": vitals})
}

func (h *Handler) ListProcedures(c *fiber.Ctx) error {
	nurseID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	var patientID *uuid.UUID
	if raw := c.Query("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": "Invalid patient_id",
			})
		}
		patientID = &id
	}

	notes, err := h.service.ListProcedures(c.Context(), nurseID, patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve procedures",
		})
	}
	return c.JSON(fiber.Map{"error": false, "procedures": notes})
}

func (h *Handler) CreateProcedure(c *fiber.Ctx) error {
	nurseID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	var note models.ProcedureNote
	if err := c.BodyParser(&note); err != nil || note.PatientID == uuid.Nil || note.ProcedureType == "" || note.Notes == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "patient_id, procedure_type and notes are required",
		})
	}

	if err := h.service.CreateProcedure(c.Context(), nurseID, &note); err != nil {
		if errors.Is(err, ErrNotYourPatient) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to create procedure note",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "procedure": note})
}

func (h *Handler) InjectionGuidance(c *fiber.Ctx) error {
	nurseID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	patientID, err := uuid.Parse(c.Params("patientID"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "Invalid patient ID",
		})
	}

	analysis, err := h.service.LatestVeinAnalysis(c.Context(), nurseID, patientID)
	if err != nil {
		if errors.Is(err, ErrNotYourPatient) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		if errors.Is(err, ErrNoVeinAnalysis) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve vein analysis",
		})
	}
	return c.JSON(fiber.Map{"error": false, "analysis": analysis})
}
