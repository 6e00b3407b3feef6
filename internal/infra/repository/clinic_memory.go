package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	apptDomain "github.com/igabaycare/clinic-core/internal/domain/appointment"
	historyDomain "github.com/igabaycare/clinic-core/internal/domain/history"
	notifyDomain "github.com/igabaycare/clinic-core/internal/domain/notification"
	rxDomain "github.com/igabaycare/clinic-core/internal/domain/prescription"
	"github.com/igabaycare/clinic-core/internal/httperr"
	"github.com/igabaycare/clinic-core/internal/models"
)

// ClinicMemoryRepository keeps every collection in process memory. It backs
// STORE_DRIVER=memory and the workflow tests. Records are copied on the way
// in and out so callers never share state with the store.
type ClinicMemoryRepository struct {
	mu sync.RWMutex

	appointments  map[uuid.UUID]models.Appointment
	prescriptions map[uuid.UUID]models.Prescription
	history       []models.MedicalHistoryEntry
	notifications []models.Notification
	patients      map[uuid.UUID]models.Patient

	now func() time.Time
}

func NewClinicMemoryRepository() *ClinicMemoryRepository {
	return &ClinicMemoryRepository{
		appointments:  make(map[uuid.UUID]models.Appointment),
		prescriptions: make(map[uuid.UUID]models.Prescription),
		patients:      make(map[uuid.UUID]models.Patient),
		now:           time.Now,
	}
}

// --------------------------------------------------
// Seeding (records owned by flows outside this service)
// --------------------------------------------------

func (r *ClinicMemoryRepository) PutAppointment(ap models.Appointment) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	if ap.Version == 0 {
		ap.Version = 1
	}
	if ap.Status == "" {
		ap.Status = string(apptDomain.InitialStatus())
	}
	if ap.DurationMinutes == 0 {
		ap.DurationMinutes = 30
	}
	ap.CreatedAt = r.now()
	ap.UpdatedAt = ap.CreatedAt
	r.appointments[ap.ID] = ap
	return ap
}

func (r *ClinicMemoryRepository) PutPatient(p models.Patient) models.Patient {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.patients[p.ID] = p
	return p
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *ClinicMemoryRepository) GetAppointmentForDoctor(
	_ context.Context,
	appointmentID uuid.UUID,
	doctorID uuid.UUID,
) (*models.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	ap, ok := r.appointments[appointmentID]
	if !ok || ap.DoctorID != doctorID {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return &ap, nil
}

func (r *ClinicMemoryRepository) UpdateAppointment(
	_ context.Context,
	ap *models.Appointment,
	expectedVersion int,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.appointments[ap.ID]
	if !ok || stored.Version != expectedVersion {
		return httperr.ErrBusiness(httperr.CodeStaleWrite)
	}

	updated := *ap
	updated.UpdatedAt = r.now()
	r.appointments[ap.ID] = updated
	ap.UpdatedAt = updated.UpdatedAt
	return nil
}

// --------------------------------------------------
// Prescription
// --------------------------------------------------

func (r *ClinicMemoryRepository) CreatePrescription(
	_ context.Context,
	rx *models.Prescription,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.prescriptions {
		if existing.PrescriptionNumber == rx.PrescriptionNumber {
			return httperr.ErrBusiness(httperr.CodeDuplicateRecord)
		}
	}

	if rx.ID == uuid.Nil {
		rx.ID = uuid.New()
	}
	now := r.now()
	rx.CreatedAt, rx.UpdatedAt = now, now
	for i := range rx.Medications {
		if rx.Medications[i].ID == uuid.Nil {
			rx.Medications[i].ID = uuid.New()
		}
		rx.Medications[i].PrescriptionID = rx.ID
		rx.Medications[i].CreatedAt = now
	}

	r.prescriptions[rx.ID] = copyPrescription(*rx)
	return nil
}

func (r *ClinicMemoryRepository) GetPrescriptionForDoctor(
	_ context.Context,
	prescriptionID uuid.UUID,
	doctorID uuid.UUID,
) (*models.Prescription, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	rx, ok := r.prescriptions[prescriptionID]
	if !ok || rx.DoctorID != doctorID {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	out := copyPrescription(rx)
	return &out, nil
}

func (r *ClinicMemoryRepository) UpdatePrescriptionStatus(
	_ context.Context,
	prescriptionID uuid.UUID,
	doctorID uuid.UUID,
	status rxDomain.Status,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	rx, ok := r.prescriptions[prescriptionID]
	if !ok || rx.DoctorID != doctorID {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	rx.Status = string(status)
	rx.UpdatedAt = r.now()
	r.prescriptions[prescriptionID] = rx
	return nil
}

func copyPrescription(rx models.Prescription) models.Prescription {
	rx.Medications = append([]models.MedicationLine(nil), rx.Medications...)
	return rx
}

// --------------------------------------------------
// Medical history
// --------------------------------------------------

func (r *ClinicMemoryRepository) CreateHistoryEntry(
	_ context.Context,
	entry *models.MedicalHistoryEntry,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = r.now()
	r.history = append(r.history, *entry)
	return nil
}

func (r *ClinicMemoryRepository) ListHistoryForPatient(
	_ context.Context,
	clinicID uuid.UUID,
	patientID uuid.UUID,
) ([]models.MedicalHistoryEntry, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.MedicalHistoryEntry
	for _, e := range r.history {
		if e.ClinicID == clinicID && e.PatientID == patientID {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].VisitDate.Equal(out[j].VisitDate) {
			return out[i].VisitDate.After(out[j].VisitDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// --------------------------------------------------
// Notifications / patients
// --------------------------------------------------

func (r *ClinicMemoryRepository) CreateNotification(
	_ context.Context,
	n *models.Notification,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = r.now()
	r.notifications = append(r.notifications, *n)
	return nil
}

// NotificationsFor returns every notification addressed to userID.
func (r *ClinicMemoryRepository) NotificationsFor(userID uuid.UUID) []models.Notification {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (r *ClinicMemoryRepository) GetPatient(
	_ context.Context,
	patientID uuid.UUID,
) (*models.Patient, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[patientID]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return &p, nil
}

// Compile-time check
var (
	_ apptDomain.Repository         = (*ClinicMemoryRepository)(nil)
	_ rxDomain.Repository           = (*ClinicMemoryRepository)(nil)
	_ historyDomain.Repository      = (*ClinicMemoryRepository)(nil)
	_ notifyDomain.Repository       = (*ClinicMemoryRepository)(nil)
	_ notifyDomain.PatientDirectory = (*ClinicMemoryRepository)(nil)
)
