package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/igabaycare/clinic-core/internal/infra/repository"
	"github.com/igabaycare/clinic-core/internal/models"
)

var fixedNow = time.Date(2026, 10, 16, 10, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func seed(repo *repository.ClinicMemoryRepository, doctorID uuid.UUID, status string) models.Appointment {
	return repo.PutAppointment(models.Appointment{
		PatientID:       uuid.New(),
		DoctorID:        doctorID,
		ClinicID:        uuid.New(),
		AppointmentDate: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		AppointmentTime: "10:00",
		AppointmentType: models.TypeConsultation,
		Status:          status,
		Notes:           "headache for three days",
	})
}

// brokenUpdates fails every appointment write.
type brokenUpdates struct {
	*repository.ClinicMemoryRepository
}

func (b brokenUpdates) UpdateAppointment(context.Context, *models.Appointment, int) error {
	return errors.New("connection reset by peer")
}

// brokenHistory fails every history write.
type brokenHistory struct{}

func (brokenHistory) CreateHistoryEntry(context.Context, *models.MedicalHistoryEntry) error {
	return errors.New("history store unavailable")
}

func (brokenHistory) ListHistoryForPatient(context.Context, uuid.UUID, uuid.UUID) ([]models.MedicalHistoryEntry, error) {
	return nil, errors.New("history store unavailable")
}
