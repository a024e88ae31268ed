package patient

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/veinsight/portal-backend/internal/authctx"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListDoctors(c *fiber.Ctx) error {
	doctors, err := h.service.ListDoctors(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve doctors",
		})
	}
	return c.JSON(fiber.Map{"error": false, "doctors": doctors})
}

func (h *Handler) ListAppointments(c *fiber.Ctx) error {
	patientID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	appts, err := h.service.ListAppointments(c.Context(), patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve appointments",
		})
	}
	return c.JSON(fiber.Map{"error": false, "appointments": appts})
}

func (h *Handler) BookAppointment(c *fiber.Ctx) error {
	patientID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	var req struct {
		DoctorID        uuid.UUID `json:"doctor_id"`
		AppointmentDate string    `json:"appointment_date"`
		AppointmentTime string    `json:"appointment_time"`
		Notes           string    `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil || req.DoctorID == uuid.Nil || req.AppointmentTime == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "doctor_id, appointment_date and appointment_time are required",
		})
	}

	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "appointment_date must be YYYY-MM-DD",
		})
	}

	appt, err := h.service.BookAppointment(c.Context(), patientID, req.DoctorID, date, req.AppointmentTime, req.Notes)
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		if errors.Is(err, ErrPastDate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to book appointment",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"error": false, "appointment": appt})
}

func (h *Handler) CancelAppointment(c *fiber.Ctx) error {
	patientID, err := authctx.UserID(c)
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

	appt, err := h.service.CancelAppointment(c.Context(), patientID, apptID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "Appointment not found",
			})
		}
		if errors.Is(err, ErrAlreadyDecided) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": true, "message": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to cancel appointment",
		})
	}
	return c.JSON(fiber.Map{"error": false, "appointment": appt})
}

func (h *Handler) ListReports(c *fiber.Ctx) error {
	patientID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	reports, err := h.service.ListReports(c.Context(), patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve reports",
		})
	}
	return c.JSON(fiber.Map{"error": false, "reports": reports})
}

func (h *Handler) ListScans(c *fiber.Ctx) error {
	patientID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	scans, err := h.service.ListScans(c.Context(), patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve scans",
		})
	}
	return c.JSON(fiber.Map{"error": false, "scans": scans})
}

func (h *Handler) HealthHistory(c *fiber.Ctx) error {
	patientID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	history, err := h.service.History(c.Context(), patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve history",
		})
	}
	return c.JSON(fiber.Map{"error": false, "history": history})
}

func (h *Handler) Wellness(c *fiber.Ctx) error {
	patientID, err := authctx.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": true, "message": "Unauthorized",
		})
	}

	wellness, err := h.service.Wellness(c.Context(), patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": "Failed to retrieve wellness plan",
		})
	}
	return c.JSON(fiber.Map{"error": false, "wellness": wellness})
}
