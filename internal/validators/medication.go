package validators

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/igabaycare/clinic-core/internal/domain/prescription"
	"github.com/igabaycare/clinic-core/internal/dto"
	"github.com/igabaycare/clinic-core/internal/httperr"
	"github.com/igabaycare/clinic-core/internal/models"
)

// NormalizeMedications trims every entry, keeps those with both a name and
// a strength (dosage is accepted as an alias) and fills defaults. dropped
// holds the input indices that were discarded.
func NormalizeMedications(in []dto.MedicationInput) (lines []models.MedicationLine, dropped []int, err error) {
	var invalid []string

	for i, m := range in {
		name := strings.TrimSpace(m.MedicationName)
		strength := firstNonEmpty(m.Strength, m.Dosage)
		if name == "" || strength == "" {
			dropped = append(dropped, i)
			continue
		}

		line := models.MedicationLine{
			LineNo:              len(lines) + 1,
			MedicationName:      name,
			Strength:            strength,
			Dosage:              firstNonEmpty(m.Dosage, m.Strength),
			Form:                orDefault(m.Form, prescription.DefaultForm),
			Frequency:           orDefault(m.Frequency, prescription.DefaultFrequency),
			Duration:            orDefault(m.Duration, prescription.DefaultDuration),
			QuantityPrescribed:  prescription.DefaultQuantity,
			RefillsAllowed:      prescription.DefaultRefills,
			SpecialInstructions: strings.TrimSpace(m.SpecialInstructions),
			Status:              orDefault(m.Status, prescription.DefaultLineState),
		}

		if m.QuantityPrescribed != nil {
			if *m.QuantityPrescribed <= 0 {
				invalid = append(invalid, fmt.Sprintf("medications[%d].quantity_prescribed", i))
			}
			line.QuantityPrescribed = *m.QuantityPrescribed
		}
		if m.RefillsAllowed != nil {
			if *m.RefillsAllowed < 0 {
				invalid = append(invalid, fmt.Sprintf("medications[%d].refills_allowed", i))
			}
			line.RefillsAllowed = *m.RefillsAllowed
		}
		if !prescription.Status(line.Status).Valid() {
			invalid = append(invalid, fmt.Sprintf("medications[%d].status", i))
		}
		for _, f := range oversizedFields(&line) {
			invalid = append(invalid, fmt.Sprintf("medications[%d].%s", i, f))
		}

		lines = append(lines, line)
	}

	if len(invalid) > 0 {
		return nil, nil, httperr.ErrFields(httperr.CodeInvalidMedication, invalid...)
	}
	if len(lines) == 0 {
		return nil, nil, httperr.ErrBusiness(httperr.CodeNoValidMedications)
	}
	return lines, dropped, nil
}

// RequiredPrescriptionFields lists every appointment-derived field that is
// still missing on rx.
func RequiredPrescriptionFields(rx *models.Prescription) error {
	var missing []string

	if rx.PatientID == uuid.Nil {
		missing = append(missing, "patient_id")
	}
	if rx.ClinicID == uuid.Nil {
		missing = append(missing, "clinic_id")
	}
	if rx.DoctorID == uuid.Nil {
		missing = append(missing, "doctor_id")
	}
	if strings.TrimSpace(rx.PrescriptionNumber) == "" {
		missing = append(missing, "prescription_number")
	}
	if strings.TrimSpace(rx.PrescribingDoctorName) == "" {
		missing = append(missing, "prescribing_doctor_name")
	}

	if len(missing) > 0 {
		return httperr.ErrFields(httperr.CodeMissingRequiredField, missing...)
	}
	return nil
}

// oversizedFields names the line's text fields that exceed their column
// width. Widths are counted in characters, as postgres varchar does.
func oversizedFields(l *models.MedicationLine) []string {
	checks := []struct {
		name  string
		value string
		max   int
	}{
		{"medication_name", l.MedicationName, prescription.MaxMedicationNameLen},
		{"strength", l.Strength, prescription.MaxDoseLen},
		{"dosage", l.Dosage, prescription.MaxDoseLen},
		{"form", l.Form, prescription.MaxFormLen},
		{"frequency", l.Frequency, prescription.MaxScheduleLen},
		{"duration", l.Duration, prescription.MaxScheduleLen},
	}

	var out []string
	for _, c := range checks {
		if utf8.RuneCountInString(c.value) > c.max {
			out = append(out, c.name)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
