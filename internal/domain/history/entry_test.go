package history

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igabaycare/clinic-core/internal/models"
)

func TestFromCompletionCarriesPaymentSnapshot(t *testing.T) {
	amount := 750.0
	ap := &models.Appointment{
		ID:              uuid.New(),
		PatientID:       uuid.New(),
		DoctorID:        uuid.New(),
		ClinicID:        uuid.New(),
		AppointmentDate: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		AppointmentType: models.TypeFollowUp,
		Notes:           "persistent cough",
		DoctorNotes:     "stable",
		PaymentAmount:   &amount,
		PaymentStatus:   "paid",
	}

	entry := FromCompletion(ap, true)

	require.NotNil(t, entry.AppointmentID)
	assert.Equal(t, ap.ID, *entry.AppointmentID)
	assert.Equal(t, "stable", entry.Notes)
	assert.Equal(t, "persistent cough", entry.ChiefComplaint)
	assert.Equal(t, "follow up visit completed", entry.Treatment)
	assert.True(t, entry.PrescriptionGiven)
	assert.Equal(t, 750.0, *entry.PaymentAmount)
	assert.Equal(t, "paid", entry.PaymentStatus)
}

func TestFromPrescriptionSummarizesMedications(t *testing.T) {
	rx := &models.Prescription{
		ID:             uuid.New(),
		AppointmentID:  uuid.New(),
		PatientID:      uuid.New(),
		Diagnosis:      "Acute sinusitis",
		PrescribedDate: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		Medications: []models.MedicationLine{
			{MedicationName: "Amoxicillin", Strength: "500mg", Frequency: "3x daily", Duration: "7 days"},
			{MedicationName: "Paracetamol", Strength: "500mg", Frequency: "As needed", Duration: "3 days"},
		},
	}

	entry := FromPrescription(rx, nil)

	assert.Equal(t, "Prescribed: Amoxicillin 500mg (3x daily, 7 days); Paracetamol 500mg (As needed, 3 days)", entry.Treatment)
	assert.Equal(t, rx.ID, *entry.PrescriptionID)
	assert.Equal(t, rx.AppointmentID, *entry.AppointmentID)
	assert.Equal(t, "Acute sinusitis", entry.Diagnosis)
	assert.Empty(t, entry.ChiefComplaint)
}
