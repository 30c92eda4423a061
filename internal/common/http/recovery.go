package http

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/observability/metrics"
)

func RecoveryMiddleware(log *logger.Logger, errs *ErrorHandler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					metrics.PanicsRecovered.Inc()
					log.WithFields(r.Context(), logger.Fields{
						"method": r.Method,
						"path":   r.URL.Path,
						"action": "panic_recovered",
					}).Criticalf("panic recovered: %v\n%s", rec, debug.Stack())
					errs.HandleError(w, r, fmt.Errorf("panic: %v", rec))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
