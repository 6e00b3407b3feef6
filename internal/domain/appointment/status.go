package appointment

import "github.com/igabaycare/clinic-core/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusConfirmed   Status = "confirmed"
	StatusInProgress  Status = "in_progress"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusNoShow      Status = "no_show"
	StatusRescheduled Status = "rescheduled"
)

var allStatuses = []Status{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
	StatusRescheduled,
}

// legal source -> targets. Terminal states have no entry.
var transitions = map[Status][]Status{
	StatusScheduled:   {StatusConfirmed, StatusCancelled, StatusRescheduled},
	StatusConfirmed:   {StatusInProgress, StatusCancelled, StatusRescheduled, StatusNoShow},
	StatusInProgress:  {StatusCompleted, StatusCancelled},
	StatusRescheduled: {StatusScheduled},
}

// ===============================
// Validations
// ===============================

func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

func (s Status) Valid() bool {
	for _, known := range allStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// LegalTargets lists the statuses reachable from s in one step.
func LegalTargets(s Status) []Status {
	targets := transitions[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// CanTransition reports whether from -> to is a legal single step.
func CanTransition(from, to Status) error {
	for _, t := range transitions[from] {
		if t == to {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeInvalidTransition)
}

// InitialStatus is set by the booking flow.
func InitialStatus() Status {
	return StatusScheduled
}
