package service

import (
	"time"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/observability/metrics"
)

func recordRegistration(result string) {
	metrics.AuthRegistrations.WithLabelValues(result).Inc()
}

func recordLogin(result string) {
	metrics.AuthLogins.WithLabelValues(result).Inc()
}

func incrementSessionTokensIssued() {
	metrics.SessionTokensIssued.Inc()
}

func observeDuration(operation string, start time.Time) {
	metrics.AuthOperationDurationSeconds.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
