package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/igabaycare/clinic-core/internal/models"
)

type Repository interface {
	// GetAppointmentForDoctor returns httperr CodeNotFound when the
	// appointment does not exist or belongs to another doctor.
	GetAppointmentForDoctor(
		ctx context.Context,
		appointmentID uuid.UUID,
		doctorID uuid.UUID,
	) (*models.Appointment, error)

	// UpdateAppointment persists ap only if the stored version still equals
	// expectedVersion, returning httperr CodeStaleWrite otherwise.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		expectedVersion int,
	) error
}
