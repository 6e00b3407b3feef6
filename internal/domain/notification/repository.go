package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/igabaycare/clinic-core/internal/models"
)

type Repository interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
}

// PatientDirectory resolves the account behind a patient record.
type PatientDirectory interface {
	GetPatient(ctx context.Context, patientID uuid.UUID) (*models.Patient, error)
}
