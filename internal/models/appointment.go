package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentType string

const (
	TypeConsultation    AppointmentType = "consultation"
	TypeFollowUp        AppointmentType = "follow_up"
	TypeCheckUp         AppointmentType = "check_up"
	TypeEmergency       AppointmentType = "emergency"
	TypeVaccination     AppointmentType = "vaccination"
	TypeLaboratory      AppointmentType = "laboratory"
	TypeImaging         AppointmentType = "imaging"
	TypeDental          AppointmentType = "dental"
	TypePhysicalTherapy AppointmentType = "physical_therapy"
	TypePrenatal        AppointmentType = "prenatal"
	TypePediatric       AppointmentType = "pediatric"
	TypeDermatology     AppointmentType = "dermatology"
	TypeCardiology      AppointmentType = "cardiology"
	TypeSurgeryConsult  AppointmentType = "surgery_consult"
	TypeTelemedicine    AppointmentType = "telemedicine"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	PatientID uuid.UUID `gorm:"type:uuid;index" json:"patient_id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;index" json:"doctor_id"`
	ClinicID  uuid.UUID `gorm:"type:uuid;index" json:"clinic_id"`

	AppointmentDate time.Time       `gorm:"type:date" json:"appointment_date"`
	AppointmentTime string          `gorm:"size:8" json:"appointment_time"`
	AppointmentType AppointmentType `gorm:"size:30;default:'consultation'" json:"appointment_type"`
	DurationMinutes int             `gorm:"default:30" json:"duration_minutes"`

	Status  string `gorm:"size:20;default:'scheduled'" json:"status"`
	Version int    `gorm:"not null;default:1" json:"version"`

	Notes       string `gorm:"type:text" json:"notes"`
	DoctorNotes string `gorm:"type:text" json:"doctor_notes"`

	PaymentAmount *float64 `gorm:"type:numeric(10,2)" json:"payment_amount,omitempty"`
	PaymentStatus string   `gorm:"size:20" json:"payment_status,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Version == 0 {
		a.Version = 1
	}
	return nil
}
