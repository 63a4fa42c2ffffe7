package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RevocationBackend selects where logged-out token ids are kept.
type RevocationBackend string

const (
	RevocationMemory   RevocationBackend = "memory"
	RevocationRedis    RevocationBackend = "redis"
	RevocationPostgres RevocationBackend = "postgres"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	LogLevel        string
	DatabaseURL     string
	JWTSigningKey   string
	JWTIssuer       string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration

	Revocation         RevocationBackend
	RevocationPurge    time.Duration
	OfficerCredentials string

	Redis RedisConfig
}

// RedisConfig configures the shared Redis client. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:               getEnv("NOTICEBASE_ADDR", ":8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSigningKey:      os.Getenv("JWT_SIGNING_KEY"),
		JWTIssuer:          getEnv("JWT_ISSUER", "noticebase"),
		OfficerCredentials: os.Getenv("OFFICER_CREDENTIALS"),
		Revocation:         RevocationBackend(strings.ToLower(getEnv("REVOCATION_BACKEND", string(RevocationMemory)))),
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
	}
	if cfg.JWTSigningKey == "" {
		// Use a default for development - should be overridden in production
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 30*time.Minute); err != nil {
		return Server{}, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.RevocationPurge, err = getDuration("REVOCATION_PURGE_INTERVAL", 10*time.Minute); err != nil {
		return Server{}, err
	}
	if cfg.Redis.PoolSize, err = getInt("REDIS_POOL_SIZE", 10); err != nil {
		return Server{}, err
	}
	if cfg.Redis.MinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", 2); err != nil {
		return Server{}, err
	}
	if cfg.Redis.DialTimeout, err = getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.ReadTimeout, err = getDuration("REDIS_READ_TIMEOUT", 3*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.WriteTimeout, err = getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second); err != nil {
		return Server{}, err
	}

	if err := cfg.validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (c Server) validate() error {
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.RevocationPurge <= 0 {
		return fmt.Errorf("REVOCATION_PURGE_INTERVAL must be positive")
	}
	switch c.Revocation {
	case RevocationMemory:
	case RevocationRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("REVOCATION_BACKEND=redis requires REDIS_URL")
		}
	case RevocationPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("REVOCATION_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown REVOCATION_BACKEND %q", c.Revocation)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
