package nurse

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
	ErrNotYourPatient  = errors.New("patient is not on your care list")
	ErrAlreadyAssigned = errors.New("patient is already on your care list")
	ErrNoVeinAnalysis  = errors.New("no vein analysis on record for this patient")
)

// QueueEntry is one row of today's appointment queue.
type QueueEntry struct {
	AppointmentID   uuid.UUID `json:"appointment_id"`
	PatientID       uuid.UUID `json:"patient_id"`
	PatientName     string    `json:"patient_name"`
	AppointmentTime string    `json:"appointment_time"`
	Status          string    `json:"status"`
}

type PatientSummary struct {
	PatientID  uuid.UUID `json:"patient_id"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone,omitempty"`
	AssignedAt time.Time `json:"assigned_at"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// AppointmentQueue lists today's pending and confirmed appointments in time
// order, for the whole clinic rather than per nurse.
func (s *Service) AppointmentQueue(ctx context.Context, day time.Time) ([]QueueEntry, error) {
	var entries []QueueEntry
	err := s.db.WithContext(ctx).
		Table("appointments").
		Select("appointments.id AS appointment_id, appointments.patient_id, profiles.full_name AS patient_name, appointments.appointment_time, appointments.status").
		Joins("JOIN profiles ON profiles.user_id = appointments.patient_id").
		Where("appointments.appointment_date = ? AND appointments.status IN ?",
			day.Format("2006-01-02"), []string{models.AppointmentPending, models.AppointmentConfirmed}).
		Order("appointments.appointment_time ASC").
		Scan(&entries).Error
	return entries, err
}

func (s *Service) ListPatients(ctx context.Context, nurseID uuid.UUID) ([]PatientSummary, error) {
	var rows []PatientSummary
	err := s.db.WithContext(ctx).
		Table("nurse_patients").
		Select("nurse_patients.patient_id, profiles.full_name, profiles.phone, nurse_patients.assigned_at").
		Joins("JOIN profiles ON profiles.user_id = nurse_patients.patient_id").
		Where("nurse_patients.nurse_id = ?", nurseID).
		Order("profiles.full_name ASC").
		Scan(&rows).Error
	return rows, err
}

func (s *Service) AssignPatient(ctx context.Context, nurseID, patientID uuid.UUID) (*models.NursePatient, error) {
	var existing models.NursePatient
	err := s.db.WithContext(ctx).
		Where("nurse_id = ? AND patient_id = ?", nurseID, patientID).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyAssigned
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	link := models.NursePatient{ID: uuid.New(), NurseID: nurseID, PatientID: patientID}
	if err := s.db.WithContext(ctx).Create(&link).Error; err != nil {
		return nil, fmt.Errorf("assign patient: %w", err)
	}
	return &link, nil
}

func (s *Service) onCareList(ctx context.Context, nurseID, patientID uuid.UUID) error {
	var link models.NursePatient
	err := s.db.WithContext(ctx).
		Where("nurse_id = ? AND patient_id = ?", nurseID, patientID).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotYourPatient
	}
	return err
}

// ListVitals is clinic-wide: any nurse can read any patient's vitals, the
// way the ward board shows them. Only writes require a care-list link.
func (s *Service) ListVitals(ctx context.Context, patientID uuid.UUID, limit int) ([]models.PatientVitals, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var vitals []models.PatientVitals
	err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("recorded_at DESC").Limit(limit).
		Find(&vitals).Error
	return vitals, err
}

func (s *Service) RecordVitals(ctx context.Context, nurseID uuid.UUID, v *models.PatientVitals) error {
	if err := s.onCareList(ctx, nurseID, v.PatientID); err != nil {
		return err
	}
	v.ID = uuid.New()
	v.RecordedBy = nurseID
	if v.RecordedAt.IsZero() {
		v.RecordedAt = time.Now().UTC()
	}
	return s.db.WithContext(ctx).Create(v).Error
}

func (s *Service) ListProcedures(ctx context.Context, nurseID uuid.UUID, patientID *uuid.UUID) ([]models.ProcedureNote, error) {
	q := s.db.WithContext(ctx).Where("nurse_id = ?", nurseID)
	if patientID != nil {
		q = q.Where("patient_id = ?", *patientID)
	}
	var notes []models.ProcedureNote
	err := q.Order("created_at DESC").Find(&notes).Error
	return notes, err
}

func (s *Service) CreateProcedure(ctx context.Context, nurseID uuid.UUID, note *models.ProcedureNote) error {
	if err := s.onCareList(ctx, nurseID, note.PatientID); err != nil {
		return err
	}
	note.ID = uuid.New()
	note.NurseID = nurseID
	return s.db.WithContext(ctx).Create(note).Error
}

// LatestVeinAnalysis returns the freshest vein scan for injection guidance.
func (s *Service) LatestVeinAnalysis(ctx context.Context, nurseID, patientID uuid.UUID) (*models.VeinAnalysis, error) {
	if err := s.onCareList(ctx, nurseID, patientID); err != nil {
		return nil, err
	}

	var analysis models.VeinAnalysis
	err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		First(&analysis).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoVeinAnalysis
	}
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}
