package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MedicalReport stores a report reference; the file itself lives in object
// storage, only its URL is kept here.
type MedicalReport struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID   *uuid.UUID `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	ReportType string     `gorm:"size:100;not null" json:"report_type"`
	FileURL    string     `gorm:"type:text;not null" json:"file_url"`
	Notes      string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type Prescription struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Diagnosis   string         `gorm:"type:text;not null" json:"diagnosis"`
	Medications datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"medications"`
	Notes       string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type DietPlan struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DiseaseID   *uuid.UUID     `gorm:"type:uuid" json:"disease_id,omitempty"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Meals       datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"meals"`
	CreatedAt   time.Time      `json:"created_at"`
}

type HealthRecommendation struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID          uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID           uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	RecommendationType string    `gorm:"size:100;not null" json:"recommendation_type"`
	Title              string    `gorm:"size:255;not null" json:"title"`
	Description        string    `gorm:"type:text;not null" json:"description"`
	CreatedAt          time.Time `json:"created_at"`
}

// VeinAnalysis holds the scored output of a vein scan. Scoring itself happens
// outside this service; the portal only stores and serves the result.
type VeinAnalysis struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID           *uuid.UUID `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	ImageURL           string     `gorm:"type:text;not null" json:"image_url"`
	OverallScore       *float64   `json:"overall_score,omitempty"`
	PrimaryVeinScore   *float64   `json:"primary_vein_score,omitempty"`
	SecondaryVeinScore *float64   `json:"secondary_vein_score,omitempty"`
	AvoidVeinScore     *float64   `json:"avoid_vein_score,omitempty"`
	Confidence         *float64   `json:"confidence,omitempty"`
	Notes              string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type PatientVitals struct {
	ID                     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID              uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	RecordedBy             uuid.UUID `gorm:"type:uuid;not null;index" json:"recorded_by"`
	HeartRate              *int      `json:"heart_rate,omitempty"`
	BloodPressureSystolic  *int      `json:"blood_pressure_systolic,omitempty"`
	BloodPressureDiastolic *int      `json:"blood_pressure_diastolic,omitempty"`
	Temperature            *float64  `json:"temperature,omitempty"`
	OxygenSaturation       *int      `json:"oxygen_saturation,omitempty"`
	Weight                 *float64  `json:"weight,omitempty"`
	Notes                  string    `gorm:"type:text" json:"notes,omitempty"`
	RecordedAt             time.Time `gorm:"not null;index" json:"recorded_at"`
}

type ProcedureNote struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"patient_id"`
	NurseID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"nurse_id"`
	AppointmentID *uuid.UUID     `gorm:"type:uuid" json:"appointment_id,omitempty"`
	ProcedureType string         `gorm:"size:100;not null" json:"procedure_type"`
	Notes         string         `gorm:"type:text;not null" json:"notes"`
	Vitals        datatypes.JSON `gorm:"type:jsonb" json:"vitals,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}
