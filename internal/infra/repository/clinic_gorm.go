package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apptDomain "github.com/igabaycare/clinic-core/internal/domain/appointment"
	historyDomain "github.com/igabaycare/clinic-core/internal/domain/history"
	notifyDomain "github.com/igabaycare/clinic-core/internal/domain/notification"
	rxDomain "github.com/igabaycare/clinic-core/internal/domain/prescription"
	"github.com/igabaycare/clinic-core/internal/httperr"
	"github.com/igabaycare/clinic-core/internal/models"
)

type ClinicGormRepository struct {
	db            *gorm.DB
	appointments  collection[models.Appointment]
	prescriptions collection[models.Prescription]
	history       collection[models.MedicalHistoryEntry]
	notifications collection[models.Notification]
	patients      collection[models.Patient]
}

func NewClinicGormRepository(db *gorm.DB) *ClinicGormRepository {
	return &ClinicGormRepository{
		db:            db,
		appointments:  newCollection[models.Appointment](db),
		prescriptions: newCollection[models.Prescription](db),
		history:       newCollection[models.MedicalHistoryEntry](db),
		notifications: newCollection[models.Notification](db),
		patients:      newCollection[models.Patient](db),
	}
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *ClinicGormRepository) GetAppointmentForDoctor(
	ctx context.Context,
	appointmentID uuid.UUID,
	doctorID uuid.UUID,
) (*models.Appointment, error) {

	return r.appointments.First(ctx, map[string]any{
		"id":        appointmentID,
		"doctor_id": doctorID,
	})
}

func (r *ClinicGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	expectedVersion int,
) error {

	n, err := r.appointments.UpdateByID(ctx, ap.ID,
		map[string]any{
			"status":           ap.Status,
			"version":          ap.Version,
			"doctor_notes":     ap.DoctorNotes,
			"appointment_date": ap.AppointmentDate,
			"appointment_time": ap.AppointmentTime,
			"completed_at":     ap.CompletedAt,
			"cancelled_at":     ap.CancelledAt,
		},
		map[string]any{"version": expectedVersion},
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return httperr.ErrBusiness(httperr.CodeStaleWrite)
	}
	return nil
}

// --------------------------------------------------
// Prescription
// --------------------------------------------------

// CreatePrescription commits the header and every medication line in a
// single transaction.
func (r *ClinicGormRepository) CreatePrescription(
	ctx context.Context,
	rx *models.Prescription,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Medications").Create(rx).Error; err != nil {
			return err
		}
		if len(rx.Medications) == 0 {
			return nil
		}
		for i := range rx.Medications {
			rx.Medications[i].PrescriptionID = rx.ID
		}
		return tx.Create(&rx.Medications).Error
	})
	return translate(err)
}

func (r *ClinicGormRepository) GetPrescriptionForDoctor(
	ctx context.Context,
	prescriptionID uuid.UUID,
	doctorID uuid.UUID,
) (*models.Prescription, error) {

	var rx models.Prescription
	err := r.db.WithContext(ctx).
		Preload("Medications", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_no ASC")
		}).
		Where("id = ? AND doctor_id = ?", prescriptionID, doctorID).
		First(&rx).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rx, nil
}

func (r *ClinicGormRepository) UpdatePrescriptionStatus(
	ctx context.Context,
	prescriptionID uuid.UUID,
	doctorID uuid.UUID,
	status rxDomain.Status,
) error {

	n, err := r.prescriptions.UpdateByID(ctx, prescriptionID,
		map[string]any{"status": string(status)},
		map[string]any{"doctor_id": doctorID},
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return nil
}

// --------------------------------------------------
// Medical history
// --------------------------------------------------

func (r *ClinicGormRepository) CreateHistoryEntry(
	ctx context.Context,
	entry *models.MedicalHistoryEntry,
) error {
	return r.history.Create(ctx, entry)
}

func (r *ClinicGormRepository) ListHistoryForPatient(
	ctx context.Context,
	clinicID uuid.UUID,
	patientID uuid.UUID,
) ([]models.MedicalHistoryEntry, error) {
	return r.history.Query(ctx,
		map[string]any{"clinic_id": clinicID, "patient_id": patientID},
		"visit_date DESC, created_at DESC",
	)
}

// --------------------------------------------------
// Notifications / patients
// --------------------------------------------------

func (r *ClinicGormRepository) CreateNotification(
	ctx context.Context,
	n *models.Notification,
) error {
	return r.notifications.Create(ctx, n)
}

func (r *ClinicGormRepository) GetPatient(
	ctx context.Context,
	patientID uuid.UUID,
) (*models.Patient, error) {
	return r.patients.GetByID(ctx, patientID)
}

// Compile-time check
var (
	_ apptDomain.Repository         = (*ClinicGormRepository)(nil)
	_ rxDomain.Repository           = (*ClinicGormRepository)(nil)
	_ historyDomain.Repository      = (*ClinicGormRepository)(nil)
	_ notifyDomain.Repository       = (*ClinicGormRepository)(nil)
	_ notifyDomain.PatientDirectory = (*ClinicGormRepository)(nil)
)
