package history

import (
	"fmt"
	"strings"

	"github.com/igabaycare/clinic-core/internal/models"
)

// FromCompletion records the encounter of a completed appointment,
// including the payment state at the moment of completion.
func FromCompletion(ap *models.Appointment, prescriptionGiven bool) *models.MedicalHistoryEntry {
	appointmentID := ap.ID
	return &models.MedicalHistoryEntry{
		PatientID:         ap.PatientID,
		DoctorID:          ap.DoctorID,
		ClinicID:          ap.ClinicID,
		AppointmentID:     &appointmentID,
		VisitDate:         ap.AppointmentDate,
		ChiefComplaint:    ap.Notes,
		Treatment:         fmt.Sprintf("%s visit completed", strings.ReplaceAll(string(ap.AppointmentType), "_", " ")),
		Notes:             ap.DoctorNotes,
		PrescriptionGiven: prescriptionGiven,
		PaymentAmount:     ap.PaymentAmount,
		PaymentStatus:     ap.PaymentStatus,
	}
}

// FromPrescription summarizes an issued prescription. ap may be nil when the
// originating appointment is not at hand.
func FromPrescription(rx *models.Prescription, ap *models.Appointment) *models.MedicalHistoryEntry {
	appointmentID := rx.AppointmentID
	prescriptionID := rx.ID

	entry := &models.MedicalHistoryEntry{
		PatientID:         rx.PatientID,
		DoctorID:          rx.DoctorID,
		ClinicID:          rx.ClinicID,
		AppointmentID:     &appointmentID,
		PrescriptionID:    &prescriptionID,
		VisitDate:         rx.PrescribedDate,
		Diagnosis:         rx.Diagnosis,
		Treatment:         TreatmentSummary(rx.Medications),
		Notes:             rx.GeneralInstructions,
		PrescriptionGiven: true,
	}
	if ap != nil {
		entry.ChiefComplaint = ap.Notes
	}
	return entry
}

// TreatmentSummary renders medication lines as
// "Name Strength (frequency, duration); ...".
func TreatmentSummary(lines []models.MedicationLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%s %s (%s, %s)", l.MedicationName, l.Strength, l.Frequency, l.Duration))
	}
	return "Prescribed: " + strings.Join(parts, "; ")
}
