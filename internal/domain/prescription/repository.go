package prescription

import (
	"context"

	"github.com/google/uuid"

	"github.com/igabaycare/clinic-core/internal/models"
)

type Repository interface {
	// CreatePrescription writes the header and its medication lines as one
	// unit. A store that cannot guarantee that returns
	// *httperr.PartialPrescriptionError when only part of it landed.
	CreatePrescription(
		ctx context.Context,
		rx *models.Prescription,
	) error

	GetPrescriptionForDoctor(
		ctx context.Context,
		prescriptionID uuid.UUID,
		doctorID uuid.UUID,
	) (*models.Prescription, error)

	UpdatePrescriptionStatus(
		ctx context.Context,
		prescriptionID uuid.UUID,
		doctorID uuid.UUID,
		status Status,
	) error
}
