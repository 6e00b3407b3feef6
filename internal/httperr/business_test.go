package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBusinessThroughWrapping(t *testing.T) {
	err := fmt.Errorf("transition: %w", ErrBusiness(CodeInvalidTransition))

	assert.True(t, IsBusiness(err, CodeInvalidTransition))
	assert.False(t, IsBusiness(err, CodeStaleWrite))
	assert.False(t, IsBusiness(errors.New("boom"), CodeInvalidTransition))
}

func TestFieldsOf(t *testing.T) {
	err := ErrFields(CodeMissingRequiredField, "patient_id", "clinic_id")

	assert.Equal(t, []string{"patient_id", "clinic_id"}, FieldsOf(err))
	assert.Equal(t, "missing_required_field: patient_id, clinic_id", err.Error())
	assert.Nil(t, FieldsOf(errors.New("x")))
}

func TestPersistenceUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Persistence("update appointment", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "update appointment")
}

func TestFromErrorStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid transition", ErrBusiness(CodeInvalidTransition), http.StatusConflict, CodeInvalidTransition},
		{"stale write", ErrBusiness(CodeStaleWrite), http.StatusConflict, CodeStaleWrite},
		{"validation", ErrFields(CodeMissingRequiredField, "doctor_id"), http.StatusUnprocessableEntity, CodeMissingRequiredField},
		{"not found", ErrBusiness(CodeAppointmentNotFound), http.StatusNotFound, CodeAppointmentNotFound},
		{"partial", &PartialPrescriptionError{PrescriptionID: "x", Err: errors.New("lines")}, http.StatusInternalServerError, "partial_prescription_failure"},
		{"persistence", Persistence("create prescription", errors.New("down")), http.StatusInternalServerError, "persistence_failure"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
		})
	}
}
