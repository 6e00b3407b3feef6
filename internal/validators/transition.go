package validators

import (
	"strings"
	"time"

	"github.com/igabaycare/clinic-core/internal/domain/appointment"
	"github.com/igabaycare/clinic-core/internal/httperr"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

func ParseAppointmentStatus(raw string) (appointment.Status, error) {
	s := appointment.Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", httperr.ErrFields(httperr.CodeInvalidStatus, "status")
	}
	return s, nil
}

// AppointmentTransition checks that target is a known status reachable
// from the stored status current. An unknown stored status has no legal
// targets.
func AppointmentTransition(current, target string) error {
	to, err := ParseAppointmentStatus(target)
	if err != nil {
		return err
	}
	return appointment.CanTransition(appointment.Status(current), to)
}

// ReschedulePayload parses the optional new date (YYYY-MM-DD) and time
// (HH:MM) supplied when a rescheduled appointment is scheduled again.
// Both empty yields a nil date and empty time.
func ReschedulePayload(date, clock string, loc *time.Location) (*time.Time, string, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)

	var bad []string
	var parsedDate *time.Time

	if date != "" {
		d, err := time.ParseInLocation(dateLayout, date, loc)
		if err != nil {
			bad = append(bad, "appointment_date")
		} else {
			parsedDate = &d
		}
	}
	if clock != "" {
		if _, err := time.Parse(timeLayout, clock); err != nil {
			bad = append(bad, "appointment_time")
		}
	}

	if len(bad) > 0 {
		return nil, "", httperr.ErrFields(httperr.CodeInvalidSchedule, bad...)
	}
	return parsedDate, clock, nil
}
