package jwtverify

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/clock"
	commonhttp "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/http"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
)

const testSecret = "test-secret-key-at-least-32-bytes-long"

var issuedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "user-1",
		"usr":   "alice",
		"email": "alice@x.com",
		"iat":   issuedAt.Unix(),
		"exp":   issuedAt.Add(7 * 24 * time.Hour).Unix(),
	}
}

func TestVerify_SevenDayBoundary(t *testing.T) {
	clk := clock.NewMockClock(issuedAt)
	v := NewVerifier(testSecret, clk)
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())

	clk.SetTime(issuedAt.Add(6 * 24 * time.Hour))
	claims, err := v.Verify(token)
	if err != nil {
		t.Fatalf("Verify() at T+6d error = %v", err)
	}
	if claims.UserID != "user-1" || claims.Username != "alice" || claims.Email != "alice@x.com" {
		t.Errorf("unexpected claims %+v", claims)
	}

	clk.SetTime(issuedAt.Add(8 * 24 * time.Hour))
	if _, err := v.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("Verify() at T+8d error = %v, want ErrTokenExpired", err)
	}
}

func TestVerify_Invalid(t *testing.T) {
	v := NewVerifier(testSecret, clock.NewMockClock(issuedAt))

	noExp := validClaims()
	delete(noExp, "exp")
	noSub := validClaims()
	delete(noSub, "sub")

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "wrong secret", token: signToken(t, jwt.SigningMethodHS256, []byte("another-secret-another-secret-xx"), validClaims())},
		{name: "wrong algorithm", token: signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims())},
		{name: "missing exp", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noExp)},
		{name: "missing sub", token: signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noSub)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	clk := clock.NewMockClock(issuedAt)
	v := NewVerifier(testSecret, clk)
	log := logger.NewWithWriter(io.Discard, "test", "error")
	errs := commonhttp.NewErrorHandler(log, false)

	var seen Claims
	protected := Middleware(v, errs, log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	good := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())

	tests := []struct {
		name       string
		header     string
		advance    time.Duration
		wantStatus int
		wantCode   string
	}{
		{name: "ok", header: "Bearer " + good, wantStatus: http.StatusNoContent},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantCode: "AUTH_REQUIRED"},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantCode: "AUTH_REQUIRED"},
		{name: "invalid", header: "Bearer nope", wantStatus: http.StatusUnauthorized, wantCode: "INVALID_TOKEN"},
		{name: "expired", header: "Bearer " + good, advance: 8 * 24 * time.Hour, wantStatus: http.StatusUnauthorized, wantCode: "TOKEN_EXPIRED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk.SetTime(issuedAt.Add(tt.advance))
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantCode == "" {
				if seen.UserID != "user-1" {
					t.Errorf("claims not stored in context: %+v", seen)
				}
				return
			}

			var body struct {
				Success bool   `json:"success"`
				Code    string `json:"code"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success || body.Code != tt.wantCode {
				t.Errorf("body = %+v, want code %s", body, tt.wantCode)
			}
		})
	}
}
