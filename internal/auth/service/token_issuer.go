package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/clock"
	userdomain "github.com/hoangtung01022003/Animation-Film-Showcase/internal/user/domain"
)

// TokenIssuer signs HS256 session tokens; jwtverify.Verifier reads them back.
type TokenIssuer struct {
	jwtSecret []byte
	clock     clock.Clock
	ttl       time.Duration
}

func NewTokenIssuer(jwtSecret string, ttl time.Duration, clock clock.Clock) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret: []byte(jwtSecret),
		clock:     clock,
		ttl:       ttl,
	}
}

func (ti *TokenIssuer) Issue(user userdomain.User) (string, time.Time, error) {
	now := ti.clock.Now()
	expiresAt := now.Add(ti.ttl)
	claims := jwt.MapClaims{
		"sub":   string(user.ID),
		"usr":   user.Username,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}

	incrementSessionTokensIssued()
	return tokenString, expiresAt, nil
}
