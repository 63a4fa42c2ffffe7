package service

import (
	"context"
	"log/slog"
	"time"

	jwttoken "noticebase/internal/jwt_token"
	"noticebase/internal/platform/metrics"
	"noticebase/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks CredentialStore,RevocationList

const defaultTokenTTL = 30 * time.Minute

// CredentialStore returns the bcrypt hash for an officer.
type CredentialStore interface {
	Find(ctx context.Context, username string) (string, error)
}

// RevocationList records logged-out token ids.
type RevocationList interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// TokenResult is returned by login and refresh.
type TokenResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Service issues, refreshes and revokes officer access tokens.
type Service struct {
	credentials CredentialStore
	revocations RevocationList
	jwt         *jwttoken.JWTService
	tokenTTL    time.Duration
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTokenTTL sets the access token lifetime. Non-positive values keep the default.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

func New(credentials CredentialStore, revocations RevocationList, jwt *jwttoken.JWTService, opts ...Option) *Service {
	s := &Service{
		credentials: credentials,
		revocations: revocations,
		jwt:         jwt,
		tokenTTL:    defaultTokenTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if s.logger == nil {
		return
	}
	args := append(attributes,
		"event", event,
		"log_type", "audit",
		"request_id", requestcontext.RequestID(ctx),
	)
	s.logger.InfoContext(ctx, event, args...)
}

func (s *Service) authFailure(ctx context.Context, reason string, attributes ...any) {
	if s.metrics != nil && reason == "invalid_credentials" {
		s.metrics.LoginFailures.Inc()
	}
	if s.logger == nil {
		return
	}
	args := append(attributes,
		"reason", reason,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.logger.WarnContext(ctx, "authentication failed", args...)
}
