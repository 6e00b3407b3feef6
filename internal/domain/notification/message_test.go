package notification

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/igabaycare/clinic-core/internal/models"
)

func TestPrescriptionIssued(t *testing.T) {
	userID := uuid.New()
	rx := &models.Prescription{
		AppointmentID:         uuid.New(),
		PrescriptionNumber:    "RX-ABC",
		PrescribingDoctorName: "Reyes",
		ValidUntil:            time.Date(2026, 11, 14, 0, 0, 0, 0, time.UTC),
		Medications:           []models.MedicationLine{{MedicationName: "Amoxicillin"}},
	}

	n := PrescriptionIssued(rx, userID)

	assert.Equal(t, userID, n.UserID)
	assert.Equal(t, rx.AppointmentID, *n.AppointmentID)
	assert.Equal(t, TypePrescription, n.Type)
	assert.Equal(t, "Dr. Reyes issued prescription RX-ABC with 1 medication. Valid until Nov 14, 2026.", n.Message)
}
