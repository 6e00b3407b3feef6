package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Prescription struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	AppointmentID uuid.UUID `gorm:"type:uuid;index" json:"appointment_id"`
	PatientID     uuid.UUID `gorm:"type:uuid;index" json:"patient_id"`
	DoctorID      uuid.UUID `gorm:"type:uuid;index" json:"doctor_id"`
	ClinicID      uuid.UUID `gorm:"type:uuid" json:"clinic_id"`

	PrescriptionNumber    string `gorm:"size:40;uniqueIndex;not null" json:"prescription_number"`
	PrescribingDoctorName string `gorm:"size:120" json:"prescribing_doctor_name"`

	PrescribedDate time.Time `gorm:"type:date" json:"prescribed_date"`
	ValidUntil     time.Time `gorm:"type:date" json:"valid_until"`
	Status         string    `gorm:"size:20;default:'active'" json:"status"`

	Diagnosis           string `gorm:"type:text" json:"diagnosis"`
	GeneralInstructions string `gorm:"type:text" json:"general_instructions"`

	Medications []MedicationLine `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"medications"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Prescription) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type MedicationLine struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PrescriptionID uuid.UUID `gorm:"type:uuid;index" json:"prescription_id"`
	LineNo         int       `json:"line_no"`

	MedicationName      string `gorm:"size:200;not null" json:"medication_name"`
	Strength            string `gorm:"size:60;not null" json:"strength"`
	Dosage              string `gorm:"size:60;not null" json:"dosage"`
	Form                string `gorm:"size:30" json:"form"`
	Frequency           string `gorm:"size:60" json:"frequency"`
	Duration            string `gorm:"size:60" json:"duration"`
	QuantityPrescribed  int    `json:"quantity_prescribed"`
	RefillsAllowed      int    `json:"refills_allowed"`
	SpecialInstructions string `gorm:"type:text" json:"special_instructions"`
	Status              string `gorm:"size:20;default:'active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
}

func (m *MedicationLine) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
