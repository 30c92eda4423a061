package http

import (
	"context"
	"net/http"
	"time"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/constants"
	commonerrors "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/errors"
)

// MaxRequestSizeMiddleware rejects declared oversize bodies up front and caps
// the rest with http.MaxBytesReader; DecodeJSON reports the overflow.
func MaxRequestSizeMiddleware(maxBytes int64, errs *ErrorHandler) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = constants.DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				errs.HandleError(w, r, commonerrors.ErrRequestTooLarge)
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
