package config

import (
	"os"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string
	Environment    string
	JWTSigningKey  string
	APIKeyHash     string
	AuthDisabled   bool
	TokenTTL       time.Duration
	RequestTimeout time.Duration
}

var (
	DefaultTokenTTL       = 15 * time.Minute
	DefaultRequestTimeout = 30 * time.Second
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("SIFT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	env := os.Getenv("SIFT_ENV")
	if env == "" {
		env = "dev"
	}

	jwtSigningKey := os.Getenv("SIFT_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	tokenTTL := DefaultTokenTTL
	if s := os.Getenv("SIFT_TOKEN_TTL"); s != "" {
		if duration, err := time.ParseDuration(s); err == nil {
			tokenTTL = duration
		}
	}

	requestTimeout := DefaultRequestTimeout
	if s := os.Getenv("SIFT_REQUEST_TIMEOUT"); s != "" {
		if duration, err := time.ParseDuration(s); err == nil {
			requestTimeout = duration
		}
	}

	return Server{
		Addr:           addr,
		Environment:    env,
		JWTSigningKey:  jwtSigningKey,
		APIKeyHash:     os.Getenv("SIFT_API_KEY_HASH"),
		AuthDisabled:   os.Getenv("SIFT_AUTH_DISABLED") == "true",
		TokenTTL:       tokenTTL,
		RequestTimeout: requestTimeout,
	}
}
