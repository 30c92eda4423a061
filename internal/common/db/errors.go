package db

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"

	commonerrors "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/errors"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/observability/metrics"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func extractTableFromOperation(operation string) string {
	operation = strings.ToLower(operation)
	switch {
	case strings.Contains(operation, "stats"):
		return "movie_stats"
	case strings.Contains(operation, "review"):
		return "reviews"
	case strings.Contains(operation, "user"):
		return "users"
	default:
		return "unknown"
	}
}

// IsUnavailable reports whether err means the store could not be reached in time,
// as opposed to the query itself being rejected.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, commonerrors.ErrCircuitOpen) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}

	if pgconn.SafeToRetry(err) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "08"):
			return true
		case pgErr.Code == "53300", pgErr.Code == "57P01", pgErr.Code == "57P03":
			return true
		}
	}

	msg := err.Error()
	return strings.Contains(msg, "failed to connect") || strings.Contains(msg, "closed pool")
}

// UniqueViolation returns the violated constraint name when err is a 23505.
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// ForeignKeyViolation reports whether err is a 23503, i.e. a referenced row is gone.
func ForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

func HandleQueryError(err error, notFoundErr error, operation string, startTime time.Time) error {
	MeasureQueryDuration(operation, startTime)

	if err == nil {
		return nil
	}
	if notFoundErr != nil && errors.Is(err, pgx.ErrNoRows) {
		return notFoundErr
	}
	return classify(err, operation)
}

func HandleExecError(err error, operation string, startTime time.Time) error {
	MeasureQueryDuration(operation, startTime)

	if err == nil {
		return nil
	}
	return classify(err, operation)
}

func MeasureQueryDuration(operation string, startTime time.Time) {
	table := extractTableFromOperation(operation)
	metrics.DBQueryDurationSeconds.WithLabelValues(operation, table).Observe(time.Since(startTime).Seconds())
}

func classify(err error, operation string) error {
	if _, ok := commonerrors.AsDomainError(err); ok {
		return err
	}

	table := extractTableFromOperation(operation)
	metrics.DBQueryErrors.WithLabelValues(operation, table, fmt.Sprintf("%T", err)).Inc()

	if IsUnavailable(err) {
		metrics.DBUnavailable.WithLabelValues(operation).Inc()
		return commonerrors.ErrServiceUnavailable.WithCause(fmt.Errorf("%s: %w", operation, err))
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}
