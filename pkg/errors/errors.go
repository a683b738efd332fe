package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType classifies failures surfaced by the tracker core.
type ErrorType string

const (
	// ErrorTypeValidation indicates malformed or out-of-range input
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeConflict indicates a business-rule violation against existing data
	ErrorTypeConflict ErrorType = "CONFLICT"

	// ErrorTypeNotFound indicates a reference to a nonexistent record
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeInternal indicates a storage or other unexpected failure
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// Codes narrow an ErrorType down to the rule that was broken.
const (
	CodeInvalidValue       = "invalid_value"
	CodeDuplicateDate      = "duplicate_date"
	CodeOngoingTreatment   = "ongoing_treatment"
	CodeDuplicateMedicalID = "duplicate_medical_id"
	CodeDuplicatePending   = "duplicate_pending"
	CodeInvalidTransition  = "invalid_transition"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code,omitempty"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(format string, args ...any) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Code:    CodeInvalidValue,
		Message: fmt.Sprintf(format, args...),
	}
}

func NewConflictError(code string, format string, args ...any) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func NewNotFoundError(resource string, id string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s %s not found", resource, id),
	}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// TypeOf reports the ErrorType carried by err, or ErrorTypeInternal for foreign errors.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

func CodeOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func IsValidation(err error) bool { return err != nil && TypeOf(err) == ErrorTypeValidation }
func IsConflict(err error) bool   { return err != nil && TypeOf(err) == ErrorTypeConflict }
func IsNotFound(err error) bool   { return err != nil && TypeOf(err) == ErrorTypeNotFound }
