package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation         ErrorCategory = "VALIDATION"
	CategoryConflict           ErrorCategory = "CONFLICT"
	CategoryAuth               ErrorCategory = "AUTH"
	CategoryNotFound           ErrorCategory = "NOT_FOUND"
	CategoryServiceUnavailable ErrorCategory = "SERVICE_UNAVAILABLE"
	CategoryInternal           ErrorCategory = "INTERNAL"
)

type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	Unwrap() error
	WithCause(cause error) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string {
	return e.code
}

func (e *domainError) Category() ErrorCategory {
	return e.category
}

func (e *domainError) HTTPStatus() int {
	return e.status
}

func (e *domainError) Message() string {
	return e.message
}

func (e *domainError) Unwrap() error {
	return e.cause
}

// Is matches on code so that sentinels still compare equal after WithCause.
func (e *domainError) Is(target error) bool {
	var other *domainError
	if errors.As(target, &other) {
		return other.code == e.code
	}
	return false
}

func (e *domainError) WithCause(cause error) DomainError {
	return &domainError{
		code:     e.code,
		category: e.category,
		status:   e.status,
		message:  e.message,
		cause:    cause,
	}
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func NewValidationError(code, message string) DomainError {
	return NewDomainError(code, CategoryValidation, http.StatusBadRequest, message)
}

func NewConflictError(code, message string) DomainError {
	return NewDomainError(code, CategoryConflict, http.StatusBadRequest, message)
}

func NewAuthError(code, message string) DomainError {
	return NewDomainError(code, CategoryAuth, http.StatusUnauthorized, message)
}

func NewNotFoundError(code, message string) DomainError {
	return NewDomainError(code, CategoryNotFound, http.StatusNotFound, message)
}

func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	ErrServiceUnavailable = NewDomainError(
		"SERVICE_UNAVAILABLE",
		CategoryServiceUnavailable,
		http.StatusServiceUnavailable,
		"service temporarily unavailable, please try again later",
	)

	ErrCircuitOpen = NewDomainError(
		"CIRCUIT_OPEN",
		CategoryServiceUnavailable,
		http.StatusServiceUnavailable,
		"service temporarily unavailable, please try again later",
	)

	ErrInternalError = NewDomainError(
		"INTERNAL_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"something went wrong on our side, please try again later",
	)

	ErrInvalidJSON = NewValidationError(
		"INVALID_JSON",
		"request body must be valid JSON",
	)

	ErrRequestTooLarge = NewDomainError(
		"REQUEST_TOO_LARGE",
		CategoryValidation,
		http.StatusRequestEntityTooLarge,
		"request body too large",
	)

	ErrRouteNotFound = NewNotFoundError(
		"ROUTE_NOT_FOUND",
		"route not found",
	)

	ErrMethodNotAllowed = NewDomainError(
		"METHOD_NOT_ALLOWED",
		CategoryValidation,
		http.StatusMethodNotAllowed,
		"method not allowed",
	)

	ErrRateLimited = NewDomainError(
		"RATE_LIMITED",
		CategoryValidation,
		http.StatusTooManyRequests,
		"too many requests, slow down",
	)
)
