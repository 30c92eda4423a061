package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/constants"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrInvalidJWTSecret   = errors.New("JWT_SECRET must be at least 32 bytes")
	ErrInvalidBcryptCost  = errors.New("BCRYPT_COST out of range")
	ErrInvalidProxy       = errors.New("TRUSTED_PROXIES entry is not an IP or CIDR")
)

const EnvProduction = "production"

type DBConfig struct {
	URL             string
	MaxConns        int32
	MinConns        int32
	ConnectTimeout  time.Duration
	AcquireTimeout  time.Duration
	MaxConnIdleTime time.Duration
}

type AppConfig struct {
	HTTPPort       string
	Env            string
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	CORSOrigins    []string
	// TrustedProxies are the peers whose X-Real-IP / X-Forwarded-For headers
	// are believed. Empty means clients are identified by the socket address.
	TrustedProxies []netip.Prefix
	RequestTimeout time.Duration
	StaticDir      string
	LogDir         string
	LogLevel       string
	FeedEnabled    bool
	DB             DBConfig
}

func (c AppConfig) IsProduction() bool {
	return c.Env == EnvProduction
}

func Load() (AppConfig, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return AppConfig{}, err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return AppConfig{}, err
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return AppConfig{}, err
	}

	cost := getIntEnv("BCRYPT_COST", constants.DefaultBcryptCost)
	if cost < constants.MinBcryptCost || cost > constants.MaxBcryptCost {
		return AppConfig{}, fmt.Errorf("%w: %d", ErrInvalidBcryptCost, cost)
	}

	proxies, err := parseTrustedProxies(getEnv("TRUSTED_PROXIES", ""))
	if err != nil {
		return AppConfig{}, err
	}

	return AppConfig{
		HTTPPort:       getEnv("PORT", constants.DefaultHTTPPort),
		Env:            strings.ToLower(getEnv("APP_ENV", "development")),
		JWTSecret:      jwtSecret,
		TokenTTL:       getDurationEnv("TOKEN_TTL", constants.DefaultTokenTTL),
		BcryptCost:     cost,
		CORSOrigins:    splitList(getEnv("CORS_ORIGIN", constants.DefaultCORSOrigin)),
		TrustedProxies: proxies,
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		StaticDir:      getEnv("STATIC_DIR", ""),
		LogDir:         getEnv("LOG_DIR", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		FeedEnabled:    getBoolEnv("FEED_ENABLED", true),
		DB: DBConfig{
			URL:             databaseURL,
			MaxConns:        int32(getIntEnv("DB_MAX_CONNS", constants.DBPoolMaxConns)),
			MinConns:        int32(getIntEnv("DB_MIN_CONNS", constants.DBPoolMinConns)),
			ConnectTimeout:  getDurationEnv("DB_CONNECT_TIMEOUT", constants.DBPoolConnectTimeout),
			AcquireTimeout:  getDurationEnv("DB_ACQUIRE_TIMEOUT", constants.DBAcquireTimeout),
			MaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", constants.DBPoolConnMaxIdleTime),
		},
	}, nil
}

// LoadDB reads only what the migrate command needs.
func LoadDB() (DBConfig, error) {
	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return DBConfig{}, err
	}
	return DBConfig{
		URL:             databaseURL,
		MaxConns:        2,
		MinConns:        0,
		ConnectTimeout:  getDurationEnv("DB_CONNECT_TIMEOUT", constants.DBPoolConnectTimeout),
		AcquireTimeout:  getDurationEnv("DB_ACQUIRE_TIMEOUT", constants.DBAcquireTimeout),
		MaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", constants.DBPoolConnMaxIdleTime),
	}, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidJWTSecret, len(secret))
	}
	return nil
}

func parseTrustedProxies(v string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, item := range splitList(v) {
		if strings.Contains(item, "/") {
			prefix, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, item)
			}
			out = append(out, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, item)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getBoolEnv(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
