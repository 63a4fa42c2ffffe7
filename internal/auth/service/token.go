package service

import (
	"context"
	"errors"
	"time"

	"noticebase/internal/auth/credentials"
	jwttoken "noticebase/internal/jwt_token"
	dErrors "noticebase/pkg/domain-errors"
	"noticebase/pkg/platform/sentinel"
)

// Login checks the officer's password and issues an access token.
func (s *Service) Login(ctx context.Context, username, password string) (*TokenResult, error) {
	if username == "" || password == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "username and password are required")
	}

	hash, err := s.credentials.Find(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.authFailure(ctx, "invalid_credentials", "username", username)
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load credentials")
	}
	if err := credentials.Verify(password, hash); err != nil {
		if dErrors.Is(err, dErrors.CodeUnauthorized) {
			s.authFailure(ctx, "invalid_credentials", "username", username)
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify credentials")
	}

	result, err := s.issue(username)
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, "officer_logged_in", "officer", username)
	return result, nil
}

// Refresh issues a new token for the subject of a valid, unrevoked token.
// The presented token stays valid until it expires or is logged out.
func (s *Service) Refresh(ctx context.Context, token string) (*TokenResult, error) {
	claims, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	result, err := s.issue(claims.Subject)
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, "token_refreshed", "officer", claims.Subject, "previous_jti", claims.ID)
	return result, nil
}

// Logout revokes a token for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.Authenticate(ctx, token)
	if err != nil {
		return err
	}
	ttl := max(s.jwt.RemainingLifetime(claims), time.Second)
	if err := s.revocations.RevokeToken(ctx, claims.ID, ttl); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke token")
	}
	if s.metrics != nil {
		s.metrics.TokensRevoked.Inc()
	}
	s.logAudit(ctx, "officer_logged_out", "officer", claims.Subject, "jti", claims.ID)
	return nil
}

// Authenticate validates a bearer token and rejects revoked ones. A failing
// revocation lookup rejects the token.
func (s *Service) Authenticate(ctx context.Context, token string) (*jwttoken.Claims, error) {
	if token == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "missing token")
	}
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		s.authFailure(ctx, "invalid_token", "error", err)
		return nil, err
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check token revocation")
	}
	if revoked {
		s.authFailure(ctx, "token_revoked", "jti", claims.ID)
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token has been revoked")
	}
	return claims, nil
}

func (s *Service) issue(subject string) (*TokenResult, error) {
	token, _, err := s.jwt.GenerateAccessToken(subject, s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	if s.metrics != nil {
		s.metrics.TokensIssued.Inc()
	}
	return &TokenResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
	}, nil
}
