// Package revocation holds revoked access-token ids until the tokens would
// have expired on their own.
package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"noticebase/pkg/platform/sentinel"
)

// List is a token revocation list keyed by jti.
type List interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Clock returns the current time.
type Clock func() time.Time

func validateTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive: %w", sentinel.ErrInvalidState)
	}
	return nil
}

func observeSince(obs prometheus.Observer, start time.Time) {
	if obs != nil {
		obs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}
}
