package appointment

import (
	"strings"
	"time"

	"github.com/igabaycare/clinic-core/internal/httperr"
	"github.com/igabaycare/clinic-core/internal/models"
)

// TransitionPayload carries the side data a transition may attach.
// NewDate/NewTime are only honoured when a rescheduled appointment
// re-enters the flow as scheduled.
type TransitionPayload struct {
	ConsultationNotes string
	NewDate           *time.Time
	NewTime           string
}

func (p TransitionPayload) changesSchedule() bool {
	return p.NewDate != nil || p.NewTime != ""
}

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to target. On error ap is left untouched.
// Every successful transition bumps ap.Version by one; the repository
// compares against the previous value.
func Transition(ap *models.Appointment, target Status, p TransitionPayload, now time.Time) error {
	from := Status(ap.Status)
	if err := CanTransition(from, target); err != nil {
		return err
	}

	if p.changesSchedule() && !(from == StatusRescheduled && target == StatusScheduled) {
		return httperr.ErrBusiness(httperr.CodeScheduleChangeNotAllowed)
	}

	switch target {
	case StatusCompleted:
		if notes := strings.TrimSpace(p.ConsultationNotes); notes != "" {
			ap.DoctorNotes = notes
		}
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusScheduled:
		if p.NewDate != nil {
			ap.AppointmentDate = *p.NewDate
		}
		if p.NewTime != "" {
			ap.AppointmentTime = p.NewTime
		}
	}

	ap.Status = string(target)
	ap.Version++
	return nil
}
