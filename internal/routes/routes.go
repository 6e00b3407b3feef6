package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/igabaycare/clinic-core/internal/audit"
	"github.com/igabaycare/clinic-core/internal/config"
	apptDomain "github.com/igabaycare/clinic-core/internal/domain/appointment"
	historyDomain "github.com/igabaycare/clinic-core/internal/domain/history"
	notifyDomain "github.com/igabaycare/clinic-core/internal/domain/notification"
	rxDomain "github.com/igabaycare/clinic-core/internal/domain/prescription"
	"github.com/igabaycare/clinic-core/internal/handlers"
	"github.com/igabaycare/clinic-core/internal/middleware"
	"github.com/igabaycare/clinic-core/internal/timezone"
	ucAppointment "github.com/igabaycare/clinic-core/internal/usecase/appointment"
	ucHistory "github.com/igabaycare/clinic-core/internal/usecase/history"
	ucPrescription "github.com/igabaycare/clinic-core/internal/usecase/prescription"
)

// Store is satisfied by both repository implementations.
type Store interface {
	apptDomain.Repository
	rxDomain.Repository
	historyDomain.Repository
	notifyDomain.Repository
	notifyDomain.PatientDirectory
}

type Deps struct {
	Store Store

	// Patients overrides Store for patient lookups (the Redis cache).
	Patients notifyDomain.PatientDirectory
	// Archive is nil when no bucket is configured.
	Archive ucPrescription.Archiver
	Audit   *audit.Dispatcher
	Now     func() time.Time
	Log     zerolog.Logger
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	loc := timezone.Location(cfg.ClinicTimezone)
	if deps.Now == nil {
		deps.Now = timezone.Clock(cfg.ClinicTimezone)
	}
	patients := deps.Patients
	if patients == nil {
		patients = deps.Store
	}

	// ======================================================
	// USE CASES
	// ======================================================
	transitionUC := ucAppointment.NewTransitionAppointment(
		deps.Store,
		deps.Audit,
		deps.Now,
	)

	completeUC := ucAppointment.NewCompleteAppointment(
		transitionUC,
		deps.Store,
		deps.Log,
	)

	issueUC := ucPrescription.NewIssuePrescription(ucPrescription.IssueDeps{
		Appointments:  deps.Store,
		Prescriptions: deps.Store,
		History:       deps.Store,
		Notifications: deps.Store,
		Patients:      patients,
		Archive:       deps.Archive,
		Audit:         deps.Audit,
		Now:           deps.Now,
		Log:           deps.Log,
	})

	getPrescriptionUC := ucPrescription.NewGetPrescription(deps.Store)
	prescriptionStatusUC := ucPrescription.NewUpdatePrescriptionStatus(deps.Store, deps.Audit)
	listHistoryUC := ucHistory.NewListPatientHistory(deps.Store)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(transitionUC, completeUC, loc)
	prescriptionHandler := handlers.NewPrescriptionHandler(issueUC, getPrescriptionUC, prescriptionStatusUC)
	historyHandler := handlers.NewHistoryHandler(listHistoryUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	secured := api.Group("/me")
	secured.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole("doctor"))
	{
		secured.PATCH("/appointments/:id/status", appointmentHandler.Transition)
		secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
		secured.POST("/appointments/:id/prescriptions", prescriptionHandler.Issue)

		secured.GET("/prescriptions/:id", prescriptionHandler.Get)
		secured.PATCH("/prescriptions/:id/status", prescriptionHandler.UpdateStatus)

		secured.GET("/patients/:id/history", historyHandler.List)
	}
}
