package dto

import (
	"github.com/google/uuid"

	"github.com/igabaycare/clinic-core/internal/models"
)

type MedicationInput struct {
	MedicationName      string `json:"medication_name"`
	Strength            string `json:"strength"`
	Dosage              string `json:"dosage"`
	Form                string `json:"form"`
	Frequency           string `json:"frequency"`
	Duration            string `json:"duration"`
	QuantityPrescribed  *int   `json:"quantity_prescribed"`
	RefillsAllowed      *int   `json:"refills_allowed"`
	SpecialInstructions string `json:"special_instructions"`
	Status              string `json:"status"`
}

type IssuePrescriptionRequest struct {
	Diagnosis           string            `json:"diagnosis"`
	GeneralInstructions string            `json:"general_instructions"`
	Medications         []MedicationInput `json:"medications" binding:"required"`
}

type IssuePrescriptionResponse struct {
	Prescription    *models.Prescription `json:"prescription"`
	DroppedIndices  []int                `json:"dropped_indices"`
	DroppedCount    int                  `json:"dropped_count"`
	HistoryRecorded bool                 `json:"history_recorded"`
	PatientNotified bool                 `json:"patient_notified"`
	Archived        bool                 `json:"archived"`
}

type UpdatePrescriptionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type PrescriptionStatusDTO struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}
