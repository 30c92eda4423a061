package http

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"

	commonerrors "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/errors"
)

// ErrorEnvelope is the body of every failed response.
type ErrorEnvelope struct {
	Success bool                      `json:"success"`
	Code    string                    `json:"code"`
	Message string                    `json:"message"`
	Errors  []commonerrors.FieldError `json:"errors,omitempty"`
	Error   string                    `json:"error,omitempty"`
	TraceID string                    `json:"trace_id,omitempty"`
}

// MessageResponse is the body of successful responses with no payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON reads a single JSON object from the body. Unknown fields are ignored.
func DecodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return commonerrors.ErrRequestTooLarge.WithCause(err)
		}
		if errors.Is(err, io.EOF) {
			return commonerrors.ErrInvalidJSON.WithCause(errors.New("empty body"))
		}
		return commonerrors.ErrInvalidJSON.WithCause(err)
	}
	if dec.More() {
		return commonerrors.ErrInvalidJSON.WithCause(errors.New("trailing data after JSON object"))
	}
	return nil
}

// GetClientIP is the socket peer of r. Behind a proxy, RemoteAddr has already
// been rewritten by TrustedRealIPMiddleware.
func GetClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
