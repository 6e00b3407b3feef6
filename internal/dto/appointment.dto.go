package dto

import "github.com/igabaycare/clinic-core/internal/models"

type TransitionAppointmentRequest struct {
	Status            string `json:"status" binding:"required"`
	ConsultationNotes string `json:"consultation_notes"`
	AppointmentDate   string `json:"appointment_date"`
	AppointmentTime   string `json:"appointment_time"`
	Version           *int   `json:"version"`
}

type CompleteAppointmentRequest struct {
	ConsultationNotes string `json:"consultation_notes"`
	PrescriptionGiven bool   `json:"prescription_given"`
	Version           *int   `json:"version"`
}

type CompleteAppointmentResponse struct {
	Appointment     *models.Appointment `json:"appointment"`
	HistoryRecorded bool                `json:"history_recorded"`
}
