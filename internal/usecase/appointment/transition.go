package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/igabaycare/clinic-core/internal/audit"
	domain "github.com/igabaycare/clinic-core/internal/domain/appointment"
	"github.com/igabaycare/clinic-core/internal/httperr"
	"github.com/igabaycare/clinic-core/internal/models"
	"github.com/igabaycare/clinic-core/internal/validators"
)

type TransitionInput struct {
	DoctorID      uuid.UUID
	AppointmentID uuid.UUID
	Target        domain.Status
	Payload       domain.TransitionPayload

	// ExpectedVersion, when set, is the version the caller last saw.
	ExpectedVersion *int
}

type TransitionAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewTransitionAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	now func() time.Time,
) *TransitionAppointment {
	if now == nil {
		now = time.Now
	}
	return &TransitionAppointment{
		repo:  repo,
		audit: audit,
		now:   now,
	}
}

// Execute applies one state-machine step and persists it on the
// appointment record alone. It never cascades into other workflows.
func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	in TransitionInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForDoctor(ctx, in.AppointmentID, in.DoctorID)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}
		return nil, httperr.Persistence("load appointment", err)
	}

	if in.ExpectedVersion != nil && *in.ExpectedVersion != ap.Version {
		return nil, httperr.ErrBusiness(httperr.CodeStaleWrite)
	}

	if err := validators.AppointmentTransition(ap.Status, string(in.Target)); err != nil {
		return nil, err
	}

	from := ap.Status
	expected := ap.Version

	if err := domain.Transition(ap, in.Target, in.Payload, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap, expected); err != nil {
		if httperr.IsBusiness(err, httperr.CodeStaleWrite) {
			return nil, err
		}
		return nil, httperr.Persistence("update appointment", err)
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: ap.ClinicID,
		UserID:   &in.DoctorID,
		Action:   "appointment_" + string(in.Target),
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"from":    from,
			"to":      ap.Status,
			"version": ap.Version,
		},
	})

	return ap, nil
}
