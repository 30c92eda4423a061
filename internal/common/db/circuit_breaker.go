package db

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	commonerrors "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/errors"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/observability/metrics"
)

// DBCircuitBreaker bounds every store call with a timeout and stops sending
// work to the database after threshold consecutive connectivity failures.
// Query errors (constraint violations, no rows) do not count as failures.
type DBCircuitBreaker struct {
	failures    atomic.Int32
	lastFailure atomic.Value
	threshold   int32
	timeout     time.Duration
	resetAfter  time.Duration
	log         *logger.Logger
}

func NewDBCircuitBreaker(threshold int32, timeout, resetAfter time.Duration, log *logger.Logger) *DBCircuitBreaker {
	cb := &DBCircuitBreaker{
		threshold:  threshold,
		timeout:    timeout,
		resetAfter: resetAfter,
		log:        log,
	}
	cb.lastFailure.Store(time.Time{})
	return cb
}

func (cb *DBCircuitBreaker) isOpen() bool {
	if cb.failures.Load() < cb.threshold {
		metrics.CircuitBreakerState.WithLabelValues("database").Set(0)
		return false
	}

	lastFailure := cb.lastFailure.Load().(time.Time)
	if lastFailure.IsZero() || time.Since(lastFailure) > cb.resetAfter {
		cb.reset()
		metrics.CircuitBreakerState.WithLabelValues("database").Set(0)
		return false
	}

	metrics.CircuitBreakerState.WithLabelValues("database").Set(1)
	return true
}

func (cb *DBCircuitBreaker) recordFailure() {
	n := cb.failures.Add(1)
	cb.lastFailure.Store(time.Now())
	metrics.CircuitBreakerFailures.WithLabelValues("database").Inc()
	if n == cb.threshold {
		cb.log.Warnf("database circuit breaker opened after %d consecutive failures", n)
	}
}

func (cb *DBCircuitBreaker) reset() {
	cb.failures.Store(0)
	cb.lastFailure.Store(time.Time{})
}

func (cb *DBCircuitBreaker) Call(ctx context.Context, fn func(context.Context) error) error {
	if cb.isOpen() {
		return commonerrors.ErrCircuitOpen
	}

	callCtx, cancel := context.WithTimeout(ctx, cb.timeout)
	defer cancel()

	err := fn(callCtx)
	if err != nil {
		if IsUnavailable(err) || errors.Is(err, commonerrors.ErrServiceUnavailable) {
			cb.recordFailure()
		}
		return err
	}

	cb.reset()
	return nil
}
