package appointment

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domain "github.com/igabaycare/clinic-core/internal/domain/appointment"
	historyDomain "github.com/igabaycare/clinic-core/internal/domain/history"
	"github.com/igabaycare/clinic-core/internal/models"
)

type CompleteInput struct {
	DoctorID          uuid.UUID
	AppointmentID     uuid.UUID
	ConsultationNotes string
	PrescriptionGiven bool
	ExpectedVersion   *int
}

type CompletionResult struct {
	Appointment     *models.Appointment
	HistoryRecorded bool
}

type CompleteAppointment struct {
	transition *TransitionAppointment
	history    historyDomain.Repository
	log        zerolog.Logger
}

func NewCompleteAppointment(
	transition *TransitionAppointment,
	history historyDomain.Repository,
	log zerolog.Logger,
) *CompleteAppointment {
	return &CompleteAppointment{
		transition: transition,
		history:    history,
		log:        log,
	}
}

// Execute marks the appointment completed, then records the encounter in
// the medical history. Only the status write decides success; a failed
// history write is logged and reported through HistoryRecorded.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	in CompleteInput,
) (*CompletionResult, error) {

	ap, err := uc.transition.Execute(ctx, TransitionInput{
		DoctorID:        in.DoctorID,
		AppointmentID:   in.AppointmentID,
		Target:          domain.StatusCompleted,
		Payload:         domain.TransitionPayload{ConsultationNotes: in.ConsultationNotes},
		ExpectedVersion: in.ExpectedVersion,
	})
	if err != nil {
		return nil, err
	}

	result := &CompletionResult{Appointment: ap}

	entry := historyDomain.FromCompletion(ap, in.PrescriptionGiven)
	if err := uc.history.CreateHistoryEntry(ctx, entry); err != nil {
		uc.log.Warn().
			Err(err).
			Str("appointment_id", ap.ID.String()).
			Msg("completion history entry not recorded")
		return result, nil
	}

	result.HistoryRecorded = true
	return result, nil
}
