package history

import (
	"context"

	"github.com/google/uuid"

	"github.com/igabaycare/clinic-core/internal/models"
)

type Repository interface {
	CreateHistoryEntry(ctx context.Context, entry *models.MedicalHistoryEntry) error

	// ListHistoryForPatient returns the patient's entries recorded at
	// clinicID, newest visit first.
	ListHistoryForPatient(ctx context.Context, clinicID, patientID uuid.UUID) ([]models.MedicalHistoryEntry, error)
}
