package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for boundary handling.
type Code string

const (
	CodeInvalidInput Code = "invalid_input"
	CodeNotFound     Code = "not_found"
	CodeBusinessRule Code = "business_rule_violation"
	CodeUnauthorized Code = "unauthorized"
	CodeStorage      Code = "storage_failure"
)

// Reason identifies the specific rule behind a rejection so callers
// can tell the failure kinds apart without parsing messages.
type Reason string

const (
	ReasonInvalidDateTime           Reason = "invalid_datetime"
	ReasonDoctorNotFound            Reason = "doctor_not_found"
	ReasonOutsideAvailability       Reason = "outside_availability"
	ReasonSlotConflict              Reason = "slot_conflict"
	ReasonInvalidAvailabilityWindow Reason = "invalid_availability_window"
	ReasonDuplicateUsername         Reason = "duplicate_username"
	ReasonInvalidCredentials        Reason = "invalid_credentials"
)

// AppError represents an application error
type AppError struct {
	Code    Code   `json:"code"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error code to an HTTP status for the handler boundary.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeBusinessRule:
		return http.StatusUnprocessableEntity
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func InvalidInput(reason Reason, message string, err error) *AppError {
	return &AppError{
		Code:    CodeInvalidInput,
		Reason:  reason,
		Message: message,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func BusinessRule(reason Reason, message string) *AppError {
	return &AppError{
		Code:    CodeBusinessRule,
		Reason:  reason,
		Message: message,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Reason:  ReasonInvalidCredentials,
		Message: message,
		Err:     err,
	}
}

func Storage(message string, err error) *AppError {
	return &AppError{
		Code:    CodeStorage,
		Message: message,
		Err:     err,
	}
}

// ReasonOf extracts the rejection reason from an error chain, if any.
func ReasonOf(err error) Reason {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Reason
	}
	return ""
}

// CodeOf extracts the error code from an error chain.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeStorage
}

func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}
