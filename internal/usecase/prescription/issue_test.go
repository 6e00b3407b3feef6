package prescription

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igabaycare/clinic-core/internal/dto"
	"github.com/igabaycare/clinic-core/internal/httperr"
	"github.com/igabaycare/clinic-core/internal/infra/repository"
	"github.com/igabaycare/clinic-core/internal/models"
)

var fixedNow = time.Date(2026, 10, 16, 14, 5, 0, 0, time.FixedZone("PHT", 8*3600))

type fixture struct {
	repo     *repository.ClinicMemoryRepository
	doctorID uuid.UUID
	patient  models.Patient
	ap       models.Appointment
}

func newFixture() *fixture {
	repo := repository.NewClinicMemoryRepository()
	doctorID := uuid.New()
	patient := repo.PutPatient(models.Patient{UserID: uuid.New(), FirstName: "Ana"})
	ap := repo.PutAppointment(models.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctorID,
		ClinicID:  uuid.New(),
		Status:    "in_progress",
		Notes:     "sore throat",
	})
	return &fixture{repo: repo, doctorID: doctorID, patient: patient, ap: ap}
}

func (f *fixture) deps() IssueDeps {
	return IssueDeps{
		Appointments:  f.repo,
		Prescriptions: f.repo,
		History:       f.repo,
		Notifications: f.repo,
		Patients:      f.repo,
		Now:           func() time.Time { return fixedNow },
		Log:           zerolog.Nop(),
	}
}

func (f *fixture) input(meds ...dto.MedicationInput) IssueInput {
	return IssueInput{
		DoctorID:      f.doctorID,
		AppointmentID: f.ap.ID,
		DoctorName:    "Reyes",
		Diagnosis:     "Acute pharyngitis",
		Medications:   meds,
	}
}

type brokenNotifications struct{}

func (brokenNotifications) CreateNotification(context.Context, *models.Notification) error {
	return errors.New("notification store timeout")
}

type brokenHistory struct{}

func (brokenHistory) CreateHistoryEntry(context.Context, *models.MedicalHistoryEntry) error {
	return errors.New("history store timeout")
}

func (brokenHistory) ListHistoryForPatient(context.Context, uuid.UUID, uuid.UUID) ([]models.MedicalHistoryEntry, error) {
	return nil, errors.New("history store timeout")
}

type partialStore struct {
	*repository.ClinicMemoryRepository
}

func (partialStore) CreatePrescription(_ context.Context, rx *models.Prescription) error {
	return &httperr.PartialPrescriptionError{
		PrescriptionID: "rx-1",
		LinesWritten:   0,
		LinesExpected:  len(rx.Medications),
		Err:            errors.New("line insert failed"),
	}
}

type brokenPrescriptions struct {
	*repository.ClinicMemoryRepository
}

func (brokenPrescriptions) CreatePrescription(context.Context, *models.Prescription) error {
	return errors.New("deadlock detected")
}

type recordingArchive struct {
	numbers []string
	err     error
}

func (a *recordingArchive) ArchivePrescription(_ context.Context, rx *models.Prescription) error {
	if a.err != nil {
		return a.err
	}
	a.numbers = append(a.numbers, rx.PrescriptionNumber)
	return nil
}

func TestIssueRejectsBatchWithoutValidLines(t *testing.T) {
	f := newFixture()
	uc := NewIssuePrescription(f.deps())

	_, err := uc.Execute(context.Background(), f.input(dto.MedicationInput{MedicationName: "", Strength: "500mg"}))

	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoValidMedications))
	entries, _ := f.repo.ListHistoryForPatient(context.Background(), f.ap.ClinicID, f.patient.ID)
	assert.Empty(t, entries)
	assert.Empty(t, f.repo.NotificationsFor(f.patient.UserID))
}

func TestIssueSingleLineWithDefaults(t *testing.T) {
	f := newFixture()
	archive := &recordingArchive{}
	deps := f.deps()
	deps.Archive = archive
	uc := NewIssuePrescription(deps)
	ctx := context.Background()

	res, err := uc.Execute(ctx, f.input(dto.MedicationInput{MedicationName: "Amoxicillin", Strength: "500mg"}))
	require.NoError(t, err)

	rx := res.Prescription
	require.Len(t, rx.Medications, 1)
	assert.Equal(t, "As needed", rx.Medications[0].Frequency)
	assert.Equal(t, "7 days", rx.Medications[0].Duration)
	assert.NotEmpty(t, rx.PrescriptionNumber)
	assert.Equal(t, "active", rx.Status)
	assert.Equal(t, f.ap.PatientID, rx.PatientID)
	assert.Equal(t, f.ap.ClinicID, rx.ClinicID)
	assert.Equal(t, "Reyes", rx.PrescribingDoctorName)
	assert.True(t, rx.ValidUntil.Equal(rx.PrescribedDate.AddDate(0, 0, 30)))
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, fixedNow.Location()), rx.PrescribedDate)

	assert.Empty(t, res.DroppedIndices)
	assert.True(t, res.HistoryRecorded)
	assert.True(t, res.PatientNotified)
	assert.True(t, res.Archived)
	assert.Equal(t, []string{rx.PrescriptionNumber}, archive.numbers)

	stored, err := f.repo.GetPrescriptionForDoctor(ctx, rx.ID, f.doctorID)
	require.NoError(t, err)
	assert.Len(t, stored.Medications, 1)

	entries, _ := f.repo.ListHistoryForPatient(ctx, f.ap.ClinicID, f.patient.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, f.ap.ID, *entries[0].AppointmentID)
	assert.Equal(t, "Prescribed: Amoxicillin 500mg (As needed, 7 days)", entries[0].Treatment)

	notes := f.repo.NotificationsFor(f.patient.UserID)
	require.Len(t, notes, 1)
	assert.Equal(t, "prescription", notes[0].Type)
}

func TestIssueMixedBatchDropsInvalidLine(t *testing.T) {
	f := newFixture()
	uc := NewIssuePrescription(f.deps())

	res, err := uc.Execute(context.Background(), f.input(
		dto.MedicationInput{MedicationName: "A", Strength: "1mg"},
		dto.MedicationInput{MedicationName: "", Strength: ""},
	))

	require.NoError(t, err)
	assert.Len(t, res.Prescription.Medications, 1)
	assert.Equal(t, []int{1}, res.DroppedIndices)
	assert.False(t, res.Archived)
}

func TestIssueSucceedsWhenNotificationFails(t *testing.T) {
	f := newFixture()
	deps := f.deps()
	deps.Notifications = brokenNotifications{}
	uc := NewIssuePrescription(deps)
	ctx := context.Background()

	res, err := uc.Execute(ctx, f.input(dto.MedicationInput{MedicationName: "Amoxicillin", Strength: "500mg"}))

	require.NoError(t, err)
	assert.False(t, res.PatientNotified)
	assert.True(t, res.HistoryRecorded)

	stored, err := f.repo.GetPrescriptionForDoctor(ctx, res.Prescription.ID, f.doctorID)
	require.NoError(t, err)
	assert.Equal(t, res.Prescription.PrescriptionNumber, stored.PrescriptionNumber)
}

func TestIssueSideEffectsAreIndependent(t *testing.T) {
	f := newFixture()
	deps := f.deps()
	deps.History = brokenHistory{}
	deps.Archive = &recordingArchive{err: errors.New("bucket missing")}
	uc := NewIssuePrescription(deps)

	res, err := uc.Execute(context.Background(), f.input(dto.MedicationInput{MedicationName: "Amoxicillin", Dosage: "500mg"}))

	require.NoError(t, err)
	assert.False(t, res.HistoryRecorded)
	assert.False(t, res.Archived)
	assert.True(t, res.PatientNotified)
}

func TestIssueSkipsNotificationForUnknownPatient(t *testing.T) {
	f := newFixture()
	orphan := f.repo.PutAppointment(models.Appointment{
		PatientID: uuid.New(),
		DoctorID:  f.doctorID,
		ClinicID:  uuid.New(),
		Status:    "in_progress",
	})
	uc := NewIssuePrescription(f.deps())
	in := f.input(dto.MedicationInput{MedicationName: "Amoxicillin", Strength: "500mg"})
	in.AppointmentID = orphan.ID

	res, err := uc.Execute(context.Background(), in)

	require.NoError(t, err)
	assert.False(t, res.PatientNotified)
	assert.True(t, res.HistoryRecorded)
}

func TestIssueMissingRequiredFields(t *testing.T) {
	f := newFixture()
	incomplete := f.repo.PutAppointment(models.Appointment{DoctorID: f.doctorID, Status: "in_progress"})
	uc := NewIssuePrescription(f.deps())
	in := f.input(dto.MedicationInput{MedicationName: "Amoxicillin", Strength: "500mg"})
	in.AppointmentID = incomplete.ID
	in.DoctorName = "  "

	_, err := uc.Execute(context.Background(), in)

	assert.True(t, httperr.IsBusiness(err, httperr.CodeMissingRequiredField))
	assert.Equal(t, []string{"patient_id", "clinic_id", "prescribing_doctor_name"}, httperr.FieldsOf(err))
}

func TestIssueUnknownAppointment(t *testing.T) {
	f := newFixture()
	uc := NewIssuePrescription(f.deps())
	in := f.input(dto.MedicationInput{MedicationName: "Amoxicillin", Strength: "500mg"})
	in.DoctorID = uuid.New()

	_, err := uc.Execute(context.Background(), in)

	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentNotFound))
}

func TestIssuePersistenceFailureSkipsSideEffects(t *testing.T) {
	f := newFixture()
	deps := f.deps()
	deps.Prescriptions = brokenPrescriptions{f.repo}
	uc := NewIssuePrescription(deps)

	_, err := uc.Execute(context.Background(), f.input(dto.MedicationInput{MedicationName: "Amoxicillin", Strength: "500mg"}))

	var pe *httperr.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "create prescription", pe.Op)
	entries, _ := f.repo.ListHistoryForPatient(context.Background(), f.ap.ClinicID, f.patient.ID)
	assert.Empty(t, entries)
	assert.Empty(t, f.repo.NotificationsFor(f.patient.UserID))
}

func TestIssuePartialWriteSurfacedDistinctly(t *testing.T) {
	f := newFixture()
	deps := f.deps()
	deps.Prescriptions = partialStore{f.repo}
	uc := NewIssuePrescription(deps)

	_, err := uc.Execute(context.Background(), f.input(dto.MedicationInput{MedicationName: "Amoxicillin", Strength: "500mg"}))

	var partial *httperr.PartialPrescriptionError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, 1, partial.LinesExpected)
	var pe *httperr.PersistenceError
	assert.False(t, errors.As(err, &pe))
	assert.Empty(t, f.repo.NotificationsFor(f.patient.UserID))
}
