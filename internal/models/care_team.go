package models

import (
	"time"

	"github.com/google/uuid"
)

// PatientDoctor links a patient to a treating doctor.
type PatientDoctor struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_patient_doctor_pair" json:"patient_id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_patient_doctor_pair" json:"doctor_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NursePatient assigns a patient to a nurse's care list.
type NursePatient struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	NurseID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_nurse_patient_pair" json:"nurse_id"`
	PatientID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_nurse_patient_pair" json:"patient_id"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`
}
