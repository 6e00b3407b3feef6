package prescription

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/igabaycare/clinic-core/internal/audit"
	domain "github.com/igabaycare/clinic-core/internal/domain/prescription"
	"github.com/igabaycare/clinic-core/internal/httperr"
	"github.com/igabaycare/clinic-core/internal/models"
)

type GetPrescription struct {
	repo domain.Repository
}

func NewGetPrescription(repo domain.Repository) *GetPrescription {
	return &GetPrescription{repo: repo}
}

func (uc *GetPrescription) Execute(
	ctx context.Context,
	doctorID uuid.UUID,
	prescriptionID uuid.UUID,
) (*models.Prescription, error) {

	rx, err := uc.repo.GetPrescriptionForDoctor(ctx, prescriptionID, doctorID)
	if err != nil {
		return nil, notFoundOrPersistence("load prescription", err)
	}
	return rx, nil
}

// UpdatePrescriptionStatus is a plain status write, outside the issuance
// workflow.
type UpdatePrescriptionStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdatePrescriptionStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdatePrescriptionStatus {
	return &UpdatePrescriptionStatus{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdatePrescriptionStatus) Execute(
	ctx context.Context,
	doctorID uuid.UUID,
	prescriptionID uuid.UUID,
	rawStatus string,
) (*models.Prescription, error) {

	status := domain.Status(strings.ToLower(strings.TrimSpace(rawStatus)))
	if !status.Valid() {
		return nil, httperr.ErrFields(httperr.CodeInvalidStatus, "status")
	}

	if err := uc.repo.UpdatePrescriptionStatus(ctx, prescriptionID, doctorID, status); err != nil {
		return nil, notFoundOrPersistence("update prescription status", err)
	}

	rx, err := uc.repo.GetPrescriptionForDoctor(ctx, prescriptionID, doctorID)
	if err != nil {
		return nil, notFoundOrPersistence("load prescription", err)
	}

	uc.audit.Dispatch(audit.Event{
		ClinicID: rx.ClinicID,
		UserID:   &doctorID,
		Action:   "prescription_" + string(status),
		Entity:   "prescription",
		EntityID: &rx.ID,
	})

	return rx, nil
}

func notFoundOrPersistence(op string, err error) error {
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		return httperr.ErrBusiness(httperr.CodePrescriptionNotFound)
	}
	return httperr.Persistence(op, err)
}
