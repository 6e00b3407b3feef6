package notification

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/igabaycare/clinic-core/internal/models"
)

const TypePrescription = "prescription"

func PrescriptionIssued(rx *models.Prescription, userID uuid.UUID) *models.Notification {
	appointmentID := rx.AppointmentID

	noun := "medication"
	if len(rx.Medications) != 1 {
		noun = "medications"
	}

	return &models.Notification{
		UserID:        userID,
		AppointmentID: &appointmentID,
		Title:         "New prescription",
		Message: fmt.Sprintf(
			"Dr. %s issued prescription %s with %d %s. Valid until %s.",
			rx.PrescribingDoctorName,
			rx.PrescriptionNumber,
			len(rx.Medications),
			noun,
			rx.ValidUntil.Format("Jan 2, 2006"),
		),
		Type: TypePrescription,
	}
}
