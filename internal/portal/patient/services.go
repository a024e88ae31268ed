package patient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veinsight/portal-backend/internal/identity"
	"github.com/veinsight/portal-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrSlotTaken      = errors.New("the doctor already has an appointment at that time")
	ErrPastDate       = errors.New("appointment date must be in the future")
	ErrAlreadyDecided = errors.New("appointment can no longer be cancelled")
)

// DoctorSummary is a bookable doctor as shown in the appointment form.
type DoctorSummary struct {
	DoctorID  uuid.UUID `json:"doctor_id"`
	FullName  string    `json:"full_name"`
	Specialty string    `json:"specialty,omitempty"`
}

// HealthHistory aggregates the read-only timeline a patient sees.
type HealthHistory struct {
	Vitals        []models.PatientVitals `json:"vitals"`
	Procedures    []models.ProcedureNote `json:"procedures"`
	Prescriptions []models.Prescription  `json:"prescriptions"`
	Reports       []models.MedicalReport `json:"reports"`
}

// Wellness aggregates diet plans and recommendations.
type Wellness struct {
	DietPlans       []models.DietPlan             `json:"diet_plans"`
	Recommendations []models.HealthRecommendation `json:"recommendations"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) ListDoctors(ctx context.Context) ([]DoctorSummary, error) {
	var rows []DoctorSummary
	err := s.db.WithContext(ctx).
		Table("user_roles").
		Select("user_roles.user_id AS doctor_id, profiles.full_name, profiles.specialty").
		Joins("JOIN profiles ON profiles.user_id = user_roles.user_id").
		Where("user_roles.role = ?", identity.RoleDoctor.String()).
		Order("profiles.full_name ASC").
		Scan(&rows).Error
	return rows, err
}

func (s *Service) ListAppointments(ctx context.Context, patientID uuid.UUID) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("appointment_date DESC, appointment_time DESC").
		Find(&appts).Error
	return appts, err
}

// BookAppointment creates a pending appointment. The slot check is best
// effort; two concurrent bookings of the same slot resolve at confirmation.
func (s *Service) BookAppointment(ctx context.Context, patientID, doctorID uuid.UUID, date time.Time, timeOfDay, notes string) (*models.Appointment, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, ErrPastDate
	}

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status IN ?",
			doctorID, date.Format("2006-01-02"), timeOfDay,
			[]string{models.AppointmentPending, models.AppointmentConfirmed}).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlotTaken
	}

	appt := models.Appointment{
		ID:              uuid.New(),
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: timeOfDay,
		Status:          models.AppointmentPending,
		Notes:           notes,
	}
	if err := s.db.WithContext(ctx).Create(&appt).Error; err != nil {
		return nil, fmt.Errorf("book appointment: %w", err)
	}
	return &appt, nil
}

// CancelAppointment lets the patient withdraw a pending or confirmed
// appointment. Completed and already cancelled appointments stay as they are.
func (s *Service) CancelAppointment(ctx context.Context, patientID, apptID uuid.UUID) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.db.WithContext(ctx).
		Where("id = ? AND patient_id = ?", apptID, patientID).
		First(&appt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if appt.Status != models.AppointmentPending && appt.Status != models.AppointmentConfirmed {
		return nil, ErrAlreadyDecided
	}

	appt.Status = models.AppointmentCancelled
	if err := s.db.WithContext(ctx).Save(&appt).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

func (s *Service) ListReports(ctx context.Context, patientID uuid.UUID) ([]models.MedicalReport, error) {
	var reports []models.MedicalReport
	err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (s *Service) ListScans(ctx context.Context, patientID uuid.UUID) ([]models.VeinAnalysis, error) {
	var scans []models.VeinAnalysis
	err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&scans).Error
	return scans, err
}

func (s *Service) History(ctx context.Context, patientID uuid.UUID) (*HealthHistory, error) {
	h := &HealthHistory{}

	if err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("recorded_at DESC").Limit(50).
		Find(&h.Vitals).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").Limit(50).
		Find(&h.Procedures).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").Limit(50).
		Find(&h.Prescriptions).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").Limit(50).
		Find(&h.Reports).Error; err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) Wellness(ctx context.Context, patientID uuid.UUID) (*Wellness, error) {
	w := &Wellness{}

	if err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&w.DietPlans).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&w.Recommendations).Error; err != nil {
		return nil, err
	}
	return w, nil
}
