package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/igabaycare/clinic-core/internal/domain/appointment"
	"github.com/igabaycare/clinic-core/internal/dto"
	"github.com/igabaycare/clinic-core/internal/httperr"
	"github.com/igabaycare/clinic-core/internal/httpresp"
	"github.com/igabaycare/clinic-core/internal/middleware"
	ucAppointment "github.com/igabaycare/clinic-core/internal/usecase/appointment"
	"github.com/igabaycare/clinic-core/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	transitionUC *ucAppointment.TransitionAppointment
	completeUC   *ucAppointment.CompleteAppointment
	loc          *time.Location
}

func NewAppointmentHandler(
	transitionUC *ucAppointment.TransitionAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		transitionUC: transitionUC,
		completeUC:   completeUC,
		loc:          loc,
	}
}

// ======================================================
// PATCH /me/appointments/:id/status
// ======================================================

func (h *AppointmentHandler) Transition(c *gin.Context) {
	doctorID := middleware.UserID(c)

	appointmentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.TransitionAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	target, err := validators.ParseAppointmentStatus(req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	newDate, newTime, err := validators.ReschedulePayload(req.AppointmentDate, req.AppointmentTime, h.loc)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	ap, err := h.transitionUC.Execute(c.Request.Context(), ucAppointment.TransitionInput{
		DoctorID:      doctorID,
		AppointmentID: appointmentID,
		Target:        target,
		Payload: domain.TransitionPayload{
			ConsultationNotes: req.ConsultationNotes,
			NewDate:           newDate,
			NewTime:           newTime,
		},
		ExpectedVersion: req.Version,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// PATCH /me/appointments/:id/complete
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	doctorID := middleware.UserID(c)

	appointmentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.CompleteAppointmentRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	result, err := h.completeUC.Execute(c.Request.Context(), ucAppointment.CompleteInput{
		DoctorID:          doctorID,
		AppointmentID:     appointmentID,
		ConsultationNotes: req.ConsultationNotes,
		PrescriptionGiven: req.PrescriptionGiven,
		ExpectedVersion:   req.Version,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.CompleteAppointmentResponse{
		Appointment:     result.Appointment,
		HistoryRecorded: result.HistoryRecorded,
	})
}
