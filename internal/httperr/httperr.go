package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string   `json:"error_code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

var businessStatus = map[string]int{
	CodeInvalidTransition:        http.StatusConflict,
	CodeStaleWrite:               http.StatusConflict,
	CodeScheduleChangeNotAllowed: http.StatusConflict,
	CodeDuplicateRecord:          http.StatusConflict,
	CodeInvalidStatus:            http.StatusBadRequest,
	CodeInvalidSchedule:          http.StatusBadRequest,
	CodeMissingRequiredField:     http.StatusUnprocessableEntity,
	CodeNoValidMedications:       http.StatusUnprocessableEntity,
	CodeInvalidMedication:        http.StatusUnprocessableEntity,
	CodeAppointmentNotFound:      http.StatusNotFound,
	CodePrescriptionNotFound:     http.StatusNotFound,
	CodeNotFound:                 http.StatusNotFound,
}

var businessMessage = map[string]string{
	CodeInvalidTransition:        "The requested status change is not allowed.",
	CodeStaleWrite:               "The appointment was changed by someone else. Reload and try again.",
	CodeScheduleChangeNotAllowed: "Date and time can only change when a rescheduled appointment is scheduled again.",
	CodeDuplicateRecord:          "A record with the same identifier already exists.",
	CodeInvalidStatus:            "Unknown status.",
	CodeInvalidSchedule:          "Invalid appointment date or time.",
	CodeMissingRequiredField:     "Required fields are missing.",
	CodeNoValidMedications:       "At least one medication with a name and dosage is required.",
	CodeInvalidMedication:        "Medication entries contain invalid values.",
	CodeAppointmentNotFound:      "Appointment not found.",
	CodePrescriptionNotFound:     "Prescription not found.",
	CodeNotFound:                 "Not found.",
}

// FromError writes the response matching err's kind.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		status, ok := businessStatus[be.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		c.JSON(status, HTTPError{
			Code:    be.Code,
			Message: businessMessage[be.Code],
			Fields:  be.Fields,
		})
		return
	}

	var partial *PartialPrescriptionError
	if errors.As(err, &partial) {
		Internal(c, "partial_prescription_failure",
			"The prescription was only partially saved. Please review it before retrying.")
		return
	}

	var pe *PersistenceError
	if errors.As(err, &pe) {
		Internal(c, "persistence_failure", "The change could not be saved.")
		return
	}

	Internal(c, "internal_error", "Unexpected error.")
}
