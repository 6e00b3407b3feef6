package prescription

import (
	"strconv"
	"strings"
	"time"
)

const ValidityDays = 30

// Medication line defaults applied when the doctor leaves a field blank.
const (
	DefaultFrequency = "As needed"
	DefaultDuration  = "7 days"
	DefaultQuantity  = 30
	DefaultRefills   = 0
	DefaultForm      = "tablet"
	DefaultLineState = "active"
)

// Column widths of the medication line text fields.
const (
	MaxMedicationNameLen = 200
	MaxDoseLen           = 60
	MaxFormLen           = 30
	MaxScheduleLen       = 60
)

// GenerateNumber derives a prescription number from a nanosecond timestamp.
// Uniqueness is enforced by the store's unique index.
func GenerateNumber(now time.Time) string {
	return "RX-" + strings.ToUpper(strconv.FormatInt(now.UnixNano(), 36))
}

// PrescribedDate truncates now to its calendar day in now's location.
func PrescribedDate(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

func ValidUntil(prescribed time.Time) time.Time {
	return prescribed.AddDate(0, 0, ValidityDays)
}
