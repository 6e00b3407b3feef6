package history

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/igabaycare/clinic-core/internal/domain/history"
	"github.com/igabaycare/clinic-core/internal/httperr"
	"github.com/igabaycare/clinic-core/internal/models"
)

type ListPatientHistory struct {
	repo domain.Repository
}

func NewListPatientHistory(repo domain.Repository) *ListPatientHistory {
	return &ListPatientHistory{repo: repo}
}

func (uc *ListPatientHistory) Execute(
	ctx context.Context,
	clinicID uuid.UUID,
	patientID uuid.UUID,
) ([]models.MedicalHistoryEntry, error) {

	entries, err := uc.repo.ListHistoryForPatient(ctx, clinicID, patientID)
	if err != nil {
		return nil, httperr.Persistence("list medical history", err)
	}
	if entries == nil {
		entries = []models.MedicalHistoryEntry{}
	}
	return entries, nil
}
