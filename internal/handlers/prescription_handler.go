package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/igabaycare/clinic-core/internal/dto"
	"github.com/igabaycare/clinic-core/internal/httperr"
	"github.com/igabaycare/clinic-core/internal/httpresp"
	"github.com/igabaycare/clinic-core/internal/middleware"
	ucPrescription "github.com/igabaycare/clinic-core/internal/usecase/prescription"
)

type PrescriptionHandler struct {
	issueUC  *ucPrescription.IssuePrescription
	getUC    *ucPrescription.GetPrescription
	statusUC *ucPrescription.UpdatePrescriptionStatus
}

func NewPrescriptionHandler(
	issueUC *ucPrescription.IssuePrescription,
	getUC *ucPrescription.GetPrescription,
	statusUC *ucPrescription.UpdatePrescriptionStatus,
) *PrescriptionHandler {
	return &PrescriptionHandler{
		issueUC:  issueUC,
		getUC:    getUC,
		statusUC: statusUC,
	}
}

// POST /me/appointments/:id/prescriptions
// The prescribing doctor's name comes from the token, never the body.
func (h *PrescriptionHandler) Issue(c *gin.Context) {
	doctorID := middleware.UserID(c)

	appointmentID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.IssuePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	result, err := h.issueUC.Execute(c.Request.Context(), ucPrescription.IssueInput{
		DoctorID:            doctorID,
		AppointmentID:       appointmentID,
		DoctorName:          middleware.UserName(c),
		Diagnosis:           req.Diagnosis,
		GeneralInstructions: req.GeneralInstructions,
		Medications:         req.Medications,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	dropped := result.DroppedIndices
	if dropped == nil {
		dropped = []int{}
	}

	httpresp.Created(c, dto.IssuePrescriptionResponse{
		Prescription:    result.Prescription,
		DroppedIndices:  dropped,
		DroppedCount:    len(dropped),
		HistoryRecorded: result.HistoryRecorded,
		PatientNotified: result.PatientNotified,
		Archived:        result.Archived,
	})
}

// GET /me/prescriptions/:id
func (h *PrescriptionHandler) Get(c *gin.Context) {
	doctorID := middleware.UserID(c)

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	rx, err := h.getUC.Execute(c.Request.Context(), doctorID, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, rx)
}

// PATCH /me/prescriptions/:id/status
func (h *PrescriptionHandler) UpdateStatus(c *gin.Context) {
	doctorID := middleware.UserID(c)

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePrescriptionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	rx, err := h.statusUC.Execute(c.Request.Context(), doctorID, id, req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, dto.PrescriptionStatusDTO{
		ID:     rx.ID,
		Status: rx.Status,
	})
}
