package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Append-only; rows are never updated after insert.
type MedicalHistoryEntry struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	PatientID      uuid.UUID  `gorm:"type:uuid;index" json:"patient_id"`
	DoctorID       uuid.UUID  `gorm:"type:uuid" json:"doctor_id"`
	ClinicID       uuid.UUID  `gorm:"type:uuid" json:"clinic_id"`
	AppointmentID  *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id"`
	PrescriptionID *uuid.UUID `gorm:"type:uuid" json:"prescription_id,omitempty"`

	VisitDate      time.Time `gorm:"type:date" json:"visit_date"`
	ChiefComplaint string    `gorm:"type:text" json:"chief_complaint"`
	Diagnosis      string    `gorm:"type:text" json:"diagnosis"`
	Treatment      string    `gorm:"type:text" json:"treatment"`
	Notes          string    `gorm:"type:text" json:"notes"`

	PrescriptionGiven bool     `json:"prescription_given"`
	PaymentAmount     *float64 `gorm:"type:numeric(10,2)" json:"payment_amount,omitempty"`
	PaymentStatus     string   `gorm:"size:20" json:"payment_status,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (e *MedicalHistoryEntry) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
