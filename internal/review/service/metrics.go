package service

import (
	"time"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/observability/metrics"
)

func recordOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	metrics.ReviewOperations.WithLabelValues(operation, result).Inc()
}

func observeDuration(operation string, start time.Time) {
	metrics.ReviewOperationDurationSeconds.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
