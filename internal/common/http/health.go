package http

import (
	"net/http"
	"time"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/clock"
)

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// HealthHandler reports process liveness only; it does not touch the database.
func HealthHandler(clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, healthResponse{
			Status:    "ok",
			Message:   "server is running",
			Timestamp: clk.Now().UTC().Format(time.RFC3339),
		})
	}
}
