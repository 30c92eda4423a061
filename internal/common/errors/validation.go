package commonerrors

import (
	"fmt"
	"net/http"
	"strings"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a DomainError that also reports which input fields failed.
type ValidationError struct {
	Fields []FieldError
	cause  error
}

func NewFieldValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Code() string {
	return "VALIDATION_FAILED"
}

func (e *ValidationError) Category() ErrorCategory {
	return CategoryValidation
}

func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

func (e *ValidationError) Message() string {
	if len(e.Fields) == 1 {
		return e.Fields[0].Message
	}
	return "invalid input"
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

func (e *ValidationError) WithCause(cause error) DomainError {
	return &ValidationError{Fields: e.Fields, cause: cause}
}

func (e *ValidationError) HasField(name string) bool {
	for _, f := range e.Fields {
		if f.Field == name {
			return true
		}
	}
	return false
}
