package revocation

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const (
	// Redis key prefix for revoked tokens
	revokedTokenKeyPrefix = "noticebase:trl:jti:"
)

// RedisTRL shares revocation state between instances. Keys expire with the
// token so Redis does the cleanup.
type RedisTRL struct {
	client  *redis.Client
	latency prometheus.Observer
}

type RedisTRLOption func(*RedisTRL)

// WithRedisLatency records IsRevoked latency in milliseconds.
func WithRedisLatency(obs prometheus.Observer) RedisTRLOption {
	return func(trl *RedisTRL) {
		trl.latency = obs
	}
}

func NewRedisTRL(client *redis.Client, opts ...RedisTRLOption) *RedisTRL {
	trl := &RedisTRL{client: client}
	for _, opt := range opts {
		if opt != nil {
			opt(trl)
		}
	}
	return trl
}

// RevokeToken stores a marker key that lives for ttl.
func (t *RedisTRL) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if err := validateTTL(ttl); err != nil {
		return err
	}
	if jti == "" {
		return nil
	}
	return t.client.Set(ctx, revokedTokenKeyPrefix+jti, "1", ttl).Err()
}

func (t *RedisTRL) IsRevoked(ctx context.Context, jti string) (bool, error) {
	defer observeSince(t.latency, time.Now())

	if jti == "" {
		return false, nil
	}
	_, err := t.client.Get(ctx, revokedTokenKeyPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
