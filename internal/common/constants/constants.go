package constants

import "time"

const (
	PasswordMaxBytes   = 72
	JWTSecretMinLength = 32

	DefaultPage      = 1
	DefaultPageLimit = 10
	MaxPageLimit     = 50
	MaxPage          = 1_000_000

	DefaultBcryptCost = 10
	MinBcryptCost     = 4
	MaxBcryptCost     = 31

	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxConns        = 20
	DBPoolMinConns        = 2
	DBPoolConnMaxLifetime = 1 * time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Second
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 2 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second
	DBAcquireTimeout      = 5 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second

	DefaultHTTPPort       = "5000"
	DefaultCORSOrigin     = "http://localhost:3000"
	DefaultRequestTimeout = 10 * time.Second
	DefaultTokenTTL       = 7 * 24 * time.Hour

	DefaultCircuitBreakerThreshold = 50
	DefaultCircuitBreakerReset     = 10 * time.Second

	RateLimitCleanupInterval           = 5 * time.Minute
	RateLimitLoginRequestsPerSecond    = 0.2
	RateLimitLoginBurst                = 5
	RateLimitRegisterRequestsPerSecond = 0.1
	RateLimitRegisterBurst             = 3
	RateLimitGeneralRequestsPerSecond  = 20
	RateLimitGeneralBurst              = 40

	FeedWriteWait      = 10 * time.Second
	FeedPongWait       = 60 * time.Second
	FeedPingPeriod     = (FeedPongWait * 9) / 10
	FeedMaxMessageSize = 512
	FeedSendBufferSize = 32
)
