package httperr

import (
	"errors"
	"fmt"
	"strings"
)

const (
	CodeInvalidTransition        = "invalid_transition"
	CodeInvalidStatus            = "invalid_status"
	CodeMissingRequiredField     = "missing_required_field"
	CodeNoValidMedications       = "no_valid_medications"
	CodeInvalidMedication        = "invalid_medication"
	CodeScheduleChangeNotAllowed = "schedule_change_not_allowed"
	CodeStaleWrite               = "stale_write"
	CodeAppointmentNotFound      = "appointment_not_found"
	CodePrescriptionNotFound     = "prescription_not_found"
	CodeNotFound                 = "not_found"
	CodeDuplicateRecord          = "duplicate_record"
	CodeInvalidSchedule          = "invalid_schedule"
)

// BusinessError is a rule violation detected before (or instead of) a write.
// Fields names the offending inputs when the rule is about specific fields.
type BusinessError struct {
	Code   string
	Fields []string
}

func (e BusinessError) Error() string {
	if len(e.Fields) == 0 {
		return e.Code
	}
	return e.Code + ": " + strings.Join(e.Fields, ", ")
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrFields(code string, fields ...string) error {
	return BusinessError{Code: code, Fields: fields}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func FieldsOf(err error) []string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Fields
	}
	return nil
}

// PersistenceError reports that a durability-boundary write failed.
// It is never retried internally.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// PartialPrescriptionError reports a prescription whose header and
// medication lines were not committed together. Callers decide whether to
// retry or reconcile by hand.
type PartialPrescriptionError struct {
	PrescriptionID string
	LinesWritten   int
	LinesExpected  int
	Err            error
}

func (e *PartialPrescriptionError) Error() string {
	return fmt.Sprintf(
		"prescription %s partially written (%d/%d lines): %v",
		e.PrescriptionID, e.LinesWritten, e.LinesExpected, e.Err,
	)
}

func (e *PartialPrescriptionError) Unwrap() error { return e.Err }
