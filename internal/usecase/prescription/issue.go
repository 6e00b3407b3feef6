package prescription

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/igabaycare/clinic-core/internal/audit"
	apptDomain "github.com/igabaycare/clinic-core/internal/domain/appointment"
	historyDomain "github.com/igabaycare/clinic-core/internal/domain/history"
	notifyDomain "github.com/igabaycare/clinic-core/internal/domain/notification"
	domain "github.com/igabaycare/clinic-core/internal/domain/prescription"
	"github.com/igabaycare/clinic-core/internal/dto"
	"github.com/igabaycare/clinic-core/internal/httperr"
	"github.com/igabaycare/clinic-core/internal/models"
	"github.com/igabaycare/clinic-core/internal/validators"
)

// Archiver keeps an external copy of an issued prescription.
type Archiver interface {
	ArchivePrescription(ctx context.Context, rx *models.Prescription) error
}

type IssueDeps struct {
	Appointments  apptDomain.Repository
	Prescriptions domain.Repository
	History       historyDomain.Repository
	Notifications notifyDomain.Repository
	Patients      notifyDomain.PatientDirectory

	// Archive is optional.
	Archive Archiver
	Audit   *audit.Dispatcher
	Now     func() time.Time
	Log     zerolog.Logger
}

type IssueInput struct {
	DoctorID            uuid.UUID
	AppointmentID       uuid.UUID
	DoctorName          string
	Diagnosis           string
	GeneralInstructions string
	Medications         []dto.MedicationInput
}

type IssueResult struct {
	Prescription    *models.Prescription
	DroppedIndices  []int
	HistoryRecorded bool
	PatientNotified bool
	Archived        bool
}

type IssuePrescription struct {
	deps IssueDeps
}

func NewIssuePrescription(deps IssueDeps) *IssuePrescription {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &IssuePrescription{deps: deps}
}

// Execute validates the whole medication batch, commits the prescription
// with its lines, then attempts history, notification and archive writes
// independently. Once the prescription is committed the call succeeds
// regardless of those follow-up writes.
func (uc *IssuePrescription) Execute(
	ctx context.Context,
	in IssueInput,
) (*IssueResult, error) {

	lines, dropped, err := validators.NormalizeMedications(in.Medications)
	if err != nil {
		return nil, err
	}

	ap, err := uc.deps.Appointments.GetAppointmentForDoctor(ctx, in.AppointmentID, in.DoctorID)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}
		return nil, httperr.Persistence("load appointment", err)
	}

	now := uc.deps.Now()
	prescribed := domain.PrescribedDate(now)

	rx := &models.Prescription{
		AppointmentID:         ap.ID,
		PatientID:             ap.PatientID,
		DoctorID:              ap.DoctorID,
		ClinicID:              ap.ClinicID,
		PrescriptionNumber:    domain.GenerateNumber(now),
		PrescribingDoctorName: strings.TrimSpace(in.DoctorName),
		PrescribedDate:        prescribed,
		ValidUntil:            domain.ValidUntil(prescribed),
		Status:                string(domain.StatusActive),
		Diagnosis:             strings.TrimSpace(in.Diagnosis),
		GeneralInstructions:   strings.TrimSpace(in.GeneralInstructions),
		Medications:           lines,
	}

	if err := validators.RequiredPrescriptionFields(rx); err != nil {
		return nil, err
	}

	if err := uc.deps.Prescriptions.CreatePrescription(ctx, rx); err != nil {
		var partial *httperr.PartialPrescriptionError
		if errors.As(err, &partial) {
			return nil, err
		}
		return nil, httperr.Persistence("create prescription", err)
	}

	log := uc.deps.Log.With().
		Str("prescription_id", rx.ID.String()).
		Str("prescription_number", rx.PrescriptionNumber).
		Logger()

	result := &IssueResult{
		Prescription:   rx,
		DroppedIndices: dropped,
	}
	if len(dropped) > 0 {
		log.Info().Ints("dropped_indices", dropped).Msg("incomplete medication lines dropped")
	}

	result.HistoryRecorded = uc.recordHistory(ctx, rx, ap, log)
	result.PatientNotified = uc.notifyPatient(ctx, rx, log)
	result.Archived = uc.archive(ctx, rx, log)

	uc.deps.Audit.Dispatch(audit.Event{
		ClinicID: rx.ClinicID,
		UserID:   &in.DoctorID,
		Action:   "prescription_issued",
		Entity:   "prescription",
		EntityID: &rx.ID,
		Metadata: map[string]any{
			"prescription_number": rx.PrescriptionNumber,
			"medications":         len(rx.Medications),
			"dropped":             len(dropped),
		},
	})

	return result, nil
}

func (uc *IssuePrescription) recordHistory(
	ctx context.Context,
	rx *models.Prescription,
	ap *models.Appointment,
	log zerolog.Logger,
) bool {
	entry := historyDomain.FromPrescription(rx, ap)
	if err := uc.deps.History.CreateHistoryEntry(ctx, entry); err != nil {
		log.Warn().Err(err).Msg("prescription history entry not recorded")
		return false
	}
	return true
}

func (uc *IssuePrescription) notifyPatient(
	ctx context.Context,
	rx *models.Prescription,
	log zerolog.Logger,
) bool {
	patient, err := uc.deps.Patients.GetPatient(ctx, rx.PatientID)
	if err != nil {
		log.Warn().Err(err).Str("patient_id", rx.PatientID.String()).Msg("patient lookup failed, skipping notification")
		return false
	}
	if patient.UserID == uuid.Nil {
		log.Warn().Str("patient_id", rx.PatientID.String()).Msg("patient has no account, skipping notification")
		return false
	}

	n := notifyDomain.PrescriptionIssued(rx, patient.UserID)
	if err := uc.deps.Notifications.CreateNotification(ctx, n); err != nil {
		log.Warn().Err(err).Msg("prescription notification not created")
		return false
	}
	return true
}

func (uc *IssuePrescription) archive(
	ctx context.Context,
	rx *models.Prescription,
	log zerolog.Logger,
) bool {
	if uc.deps.Archive == nil {
		return false
	}
	if err := uc.deps.Archive.ArchivePrescription(ctx, rx); err != nil {
		log.Warn().Err(err).Msg("prescription archive failed")
		return false
	}
	return true
}
