package http

import (
	"errors"
	"net/http"
	"strconv"

	commonerrors "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/errors"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/httpmetrics"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/observability/metrics"
)

// ErrorHandler turns any error into the JSON error envelope. Raw error text is
// only attached when exposeDetails is set (non-production).
type ErrorHandler struct {
	log           *logger.Logger
	exposeDetails bool
}

func NewErrorHandler(log *logger.Logger, exposeDetails bool) *ErrorHandler {
	return &ErrorHandler{log: log, exposeDetails: exposeDetails}
}

func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		h.handleDomainError(w, r, domainErr, err)
		return
	}

	ctx := r.Context()
	h.log.WithFields(ctx, logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"action": "unhandled_error",
	}).Errorf("unhandled error: %v", err)

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(http.StatusInternalServerError),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	h.write(w, r, http.StatusInternalServerError, commonerrors.ErrInternalError, nil, err)
}

func (h *ErrorHandler) handleDomainError(w http.ResponseWriter, r *http.Request, domainErr commonerrors.DomainError, original error) {
	ctx := r.Context()
	status := domainErr.HTTPStatus()

	fields := logger.Fields{
		"error_code": domainErr.Code(),
		"category":   string(domainErr.Category()),
		"status":     status,
		"action":     "domain_error",
	}
	switch {
	case status >= http.StatusInternalServerError:
		h.log.WithFields(ctx, fields).Errorf("request failed: %v", original)
	case h.log.ShouldLog(logger.DEBUG):
		h.log.WithFields(ctx, fields).Debugf("domain error: %v", original)
	}

	metrics.DomainErrorsTotal.WithLabelValues(
		string(domainErr.Category()),
		domainErr.Code(),
		strconv.Itoa(status),
	).Inc()

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(status),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	var fieldErrs []commonerrors.FieldError
	var verr *commonerrors.ValidationError
	if errors.As(original, &verr) {
		fieldErrs = verr.Fields
	}

	h.write(w, r, status, domainErr, fieldErrs, original)
}

func (h *ErrorHandler) write(w http.ResponseWriter, r *http.Request, status int, domainErr commonerrors.DomainError, fieldErrs []commonerrors.FieldError, original error) {
	env := ErrorEnvelope{
		Success: false,
		Code:    domainErr.Code(),
		Message: domainErr.Message(),
		Errors:  fieldErrs,
		TraceID: logger.TraceIDFromContext(r.Context()),
	}
	if h.exposeDetails && original != nil {
		env.Error = original.Error()
	}
	WriteJSON(w, status, env)
}
