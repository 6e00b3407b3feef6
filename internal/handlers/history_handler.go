package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/igabaycare/clinic-core/internal/httperr"
	"github.com/igabaycare/clinic-core/internal/httpresp"
	"github.com/igabaycare/clinic-core/internal/middleware"
	ucHistory "github.com/igabaycare/clinic-core/internal/usecase/history"
)

type HistoryHandler struct {
	listUC *ucHistory.ListPatientHistory
}

func NewHistoryHandler(listUC *ucHistory.ListPatientHistory) *HistoryHandler {
	return &HistoryHandler{listUC: listUC}
}

// GET /me/patients/:id/history
// Only entries recorded at the caller's clinic are returned.
func (h *HistoryHandler) List(c *gin.Context) {
	clinicID := middleware.ClinicID(c)

	patientID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	entries, err := h.listUC.Execute(c.Request.Context(), clinicID, patientID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, entries)
}
