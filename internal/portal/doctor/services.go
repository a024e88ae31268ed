package doctor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veinsight/portal-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotYourPatient  = errors.New("patient is not in your care list")
	ErrAlreadyAssigned = errors.New("patient is already assigned to you")
	ErrNotFound        = errors.New("record not found")
)

// PatientSummary is a care-list row: the link plus the patient's profile.
type PatientSummary struct {
	PatientID uuid.UUID `json:"patient_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Since     time.Time `json:"since"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) ListPatients(ctx context.Context, doctorID uuid.UUID) ([]PatientSummary, error) {
	var rows []PatientSummary
	err := s.db.WithContext(ctx).
		Table("patient_doctors").
		Select("patient_doctors.patient_id, profiles.full_name, profiles.email, profiles.phone, patient_doctors.created_at AS since").
		Joins("JOIN profiles ON profiles.user_id = patient_doctors.patient_id").
		Where("patient_doctors.doctor_id = ?", doctorID).
		Order("profiles.full_name ASC").
		Scan(&rows).Error
	return rows, err
}

func (s *Service) AssignPatient(ctx context.Context, doctorID, patientID uuid.UUID) (*models.PatientDoctor, error) {
	var existing models.PatientDoctor
	err := s.db.WithContext(ctx).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyAssigned
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	link := models.PatientDoctor{ID: uuid.New(), DoctorID: doctorID, PatientID: patientID}
	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		return nil, fmt.Errorf("assign patient: %w", err)
	}
	return &link, nil
}

// inCare reports whether the patient is linked to the doctor. Every write
// against a patient record goes through this check first.
func (s *Service) inCare(ctx context.Context, doctorID, patientID uuid.UUID) error {
	var link models.PatientDoctor
	err := s.db.WithContext(ctx).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotYourPatient
	}
	return err
}

func (s *Service) ListAppointments(ctx context.Context, doctorID uuid.UUID, status string) ([]models.Appointment, error) {
	q := s.db.WithContext(ctx).Where("doctor_id = ?", doctorID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var appts []models.Appointment
	err := q.Order("appointment_date ASC, appointment_time ASC").Find(&appts).Error
	return appts, err
}

func (s *Service) UpdateAppointmentStatus(ctx context.Context, doctorID, apptID uuid.UUID, status string) (*models.Appointment, error) {
	switch status {
	case models.AppointmentPending, models.AppointmentConfirmed,
		models.AppointmentCompleted, models.AppointmentCancelled:
	default:
		return nil, fmt.Errorf("invalid status %q", status)
	}

	var appt models.Appointment
	if err := s.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", apptID, doctorID).
		First(&appt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	appt.Status = status
	if err := s.db.WithContext(ctx).Save(&appt).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

func (s *Service) ListReports(ctx context.Context, doctorID uuid.UUID, patientID *uuid.UUID) ([]models.MedicalReport, error) {
	q := s.db.WithContext(ctx).Where("doctor_id = ?", doctorID)
	if patientID != nil {
		q = q.Where("patient_id = ?", *patientID)
	}
	var reports []models.MedicalReport
	err := q.Order("created_at DESC").Find(&reports).Error
	return reports, err
}

func (s *Service) CreateReport(ctx context.Context, doctorID uuid.UUID, report *models.MedicalReport) error {
	if err := s.inCare(ctx, doctorID, report.PatientID); err != nil {
		return err
	}
	report.ID = uuid.New()
	report.DoctorID = &doctorID
	return s.db.WithContext(ctx).Create(report).Error
}

func (s *Service) ListVeinAnalyses(ctx context.Context, doctorID uuid.UUID, patientID *uuid.UUID) ([]models.VeinAnalysis, error) {
	q := s.db.WithContext(ctx).Where("doctor_id = ?", doctorID)
	if patientID != nil {
		q = q.Where("patient_id = ?", *patientID)
	}
	var analyses []models.VeinAnalysis
	err := q.Order("created_at DESC").Find(&analyses).Error
	return analyses, err
}

func (s *Service) CreateVeinAnalysis(ctx context.Context, doctorID uuid.UUID, analysis *models.VeinAnalysis) error {
	if err := s.inCare(ctx, doctorID, analysis.PatientID); err != nil {
		return err
	}
	analysis.ID = uuid.New()
	analysis.DoctorID = &doctorID
	return s.db.WithContext(ctx).Create(analysis).Error
}

func (s *Service) ListPrescriptions(ctx context.Context, doctorID uuid.UUID, patientID *uuid.UUID) ([]models.Prescription, error) {
	q := s.db.WithContext(ctx).Where("doctor_id = ?", doctorID)
	if patientID != nil {
		q = q.Where("patient_id = ?", *patientID)
	}
	var prescriptions []models.Prescription
	err := q.Order("created_at DESC").Find(&prescriptions).Error
	return prescriptions, err
}

func (s *Service) CreatePrescription(ctx context.Context, doctorID uuid.UUID, p *models.Prescription) error {
	if err := s.inCare(ctx, doctorID, p.PatientID); err != nil {
		return err
	}
	p.ID = uuid.New()
	p.DoctorID = doctorID
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *Service) UpdatePrescription(ctx context.Context, doctorID, id uuid.UUID, update *models.Prescription) (*models.Prescription, error) {
	var p models.Prescription
	if err := s.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", id, doctorID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if update.Diagnosis != "" {
		p.Diagnosis = update.Diagnosis
	}
	if len(update.Medications) > 0 {
		p.Medications = update.Medications
	}
	p.Notes = update.Notes
	if err := s.db.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) DeletePrescription(ctx context.Context, doctorID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", id, doctorID).
		Delete(&models.Prescription{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ListDietPlans(ctx context.Context, doctorID uuid.UUID, patientID *uuid.UUID) ([]models.DietPlan, error) {
	q := s.db.WithContext(ctx).Where("doctor_id = ?", doctorID)
	if patientID != nil {
		q = q.Where("patient_id = ?", *patientID)
	}
	var plans []models.DietPlan
	err := q.Order("created_at DESC").Find(&plans).Error
	return plans, err
}

func (s *Service) CreateDietPlan(ctx context.Context, doctorID uuid.UUID, plan *models.DietPlan) error {
	if err := s.inCare(ctx, doctorID, plan.PatientID); err != nil {
		return err
	}
	plan.ID = uuid.New()
	plan.DoctorID = doctorID
	return s.db.WithContext(ctx).Create(plan).Error
}

func (s *Service) UpdateDietPlan(ctx context.Context, doctorID, id uuid.UUID, update *models.DietPlan) (*models.DietPlan, error) {
	var plan models.DietPlan
	if err := s.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", id, doctorID).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if update.Title != "" {
		plan.Title = update.Title
	}
	plan.Description = update.Description
	if len(update.Meals) > 0 {
		plan.Meals = update.Meals
	}
	plan.DiseaseID = update.DiseaseID
	if err := s.db.WithContext(ctx).Save(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *Service) DeleteDietPlan(ctx context.Context, doctorID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", id, doctorID).
		Delete(&models.DietPlan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ListRecommendations(ctx context.Context, doctorID uuid.UUID, patientID *uuid.UUID) ([]models.HealthRecommendation, error) {
	q := s.db.WithContext(ctx).Where("doctor_id = ?", doctorID)
	if patientID != nil {
		q = q.Where("patient_id = ?", *patientID)
	}
	var recs []models.HealthRecommendation
	err := q.Order("created_at DESC").Find(&recs).Error
	return recs, err
}

func (s *Service) CreateRecommendation(ctx context.Context, doctorID uuid.UUID, rec *models.HealthRecommendation) error {
	if err := s.inCare(ctx, doctorID, rec.PatientID); err != nil {
		return err
	}
	rec.ID = uuid.New()
	rec.DoctorID = doctorID
	return s.db.WithContext(ctx).Create(rec).Error
}
