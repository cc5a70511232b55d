package errors

import (
	"net/http"
	"strings"
)

// FieldViolation describes one invalid input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every field that failed validation in one request.
type ValidationError struct {
	Violations []FieldViolation
}

// NewValidationError builds a ValidationError from the given violations.
func NewValidationError(violations ...FieldViolation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrValidationFailed) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

func (e *ValidationError) ErrorCode() string {
	return ErrValidationFailed.ErrorCode()
}

func (e *ValidationError) Message() string {
	return ErrValidationFailed.Message()
}

func (e *ValidationError) Details() any {
	return e.Violations
}

// Fields returns the names of the failing fields in report order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}

	return fields
}
