package jwtverify

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/clock"
	commonerrors "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/errors"
	commonhttp "github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/http"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/observability/metrics"
)

var (
	ErrAuthRequired = commonerrors.NewAuthError("AUTH_REQUIRED", "authentication required, please log in")
	ErrTokenExpired = commonerrors.NewAuthError("TOKEN_EXPIRED", "session expired, please log in again")
	ErrInvalidToken = commonerrors.NewAuthError("INVALID_TOKEN", "invalid token")
)

type Claims struct {
	UserID    string
	Username  string
	Email     string
	ExpiresAt time.Time
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

// Verifier checks session tokens using only the signing secret and the clock.
// It never consults the store, so a token stays valid until it expires even
// if its user is removed; there is no revocation.
type Verifier struct {
	secret []byte
	clock  clock.Clock
}

func NewVerifier(secret string, clk clock.Clock) *Verifier {
	return &Verifier{secret: []byte(secret), clock: clk}
}

func (v *Verifier) Verify(tokenString string) (Claims, error) {
	claims, err := v.parse(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			metrics.JWTValidations.WithLabelValues("expired").Inc()
			return Claims{}, ErrTokenExpired.WithCause(err)
		}
		metrics.JWTValidations.WithLabelValues("invalid").Inc()
		return Claims{}, ErrInvalidToken.WithCause(err)
	}
	metrics.JWTValidations.WithLabelValues("ok").Inc()
	return claims, nil
}

func (v *Verifier) parse(tokenString string) (Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.clock.Now),
	)
	if err != nil {
		return Claims{}, err
	}
	if !parsed.Valid {
		return Claims{}, errors.New("token is not valid")
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims type")
	}

	sub, _ := mapClaims["sub"].(string)
	username, _ := mapClaims["usr"].(string)
	email, _ := mapClaims["email"].(string)
	if sub == "" || username == "" {
		return Claims{}, errors.New("missing sub or usr claims")
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, errors.New("missing exp claim")
	}

	return Claims{
		UserID:    sub,
		Username:  username,
		Email:     email,
		ExpiresAt: exp.Time,
	}, nil
}

func ExtractTokenFromHeader(r *http.Request) (string, bool) {
	raw := r.Header.Get("Authorization")
	if !strings.HasPrefix(raw, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	return token, token != ""
}

func Middleware(verifier *Verifier, errs *commonhttp.ErrorHandler, log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := ExtractTokenFromHeader(r)
			if !ok {
				errs.HandleError(w, r, ErrAuthRequired)
				return
			}

			claims, err := verifier.Verify(tokenString)
			if err != nil {
				log.WithFields(r.Context(), logger.Fields{
					"path":   r.URL.Path,
					"action": "jwt_auth_failed",
				}).Debugf("jwt auth failed: %v", err)
				errs.HandleError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(Claims)
	return claims, ok
}
