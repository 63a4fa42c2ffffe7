package revocation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PostgresTRL keeps revocations in the token_revocations table next to the
// records, for deployments that run without Redis. Expired rows are ignored
// on read and removed by PurgeExpired.
type PostgresTRL struct {
	db      *sql.DB
	now     Clock
	latency prometheus.Observer
}

type PostgresTRLOption func(*PostgresTRL)

func WithPostgresClock(clock Clock) PostgresTRLOption {
	return func(trl *PostgresTRL) {
		if clock != nil {
			trl.now = clock
		}
	}
}

// WithPostgresLatency records IsRevoked latency in milliseconds.
func WithPostgresLatency(obs prometheus.Observer) PostgresTRLOption {
	return func(trl *PostgresTRL) {
		trl.latency = obs
	}
}

func NewPostgresTRL(db *sql.DB, opts ...PostgresTRLOption) *PostgresTRL {
	trl := &PostgresTRL{db: db, now: time.Now}
	for _, opt := range opts {
		opt(trl)
	}
	return trl
}

// RevokeToken upserts the jti; revoking twice moves the expiry to the later
// revocation.
func (t *PostgresTRL) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if err := validateTTL(ttl); err != nil {
		return err
	}
	if jti == "" {
		return nil
	}
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO token_revocations (jti, expires_at) VALUES ($1, $2)
		ON CONFLICT (jti) DO UPDATE SET expires_at = EXCLUDED.expires_at`,
		jti, t.now().Add(ttl))
	if err != nil {
		return fmt.Errorf("revoke token %s: %w", jti, err)
	}
	return nil
}

func (t *PostgresTRL) IsRevoked(ctx context.Context, jti string) (bool, error) {
	defer observeSince(t.latency, time.Now())

	if jti == "" {
		return false, nil
	}
	var revoked bool
	err := t.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM token_revocations WHERE jti = $1 AND expires_at > $2)`,
		jti, t.now()).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("check token revocation: %w", err)
	}
	return revoked, nil
}

// PurgeExpired deletes entries whose tokens have expired anyway and reports
// how many went.
func (t *PostgresTRL) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := t.db.ExecContext(ctx, `DELETE FROM token_revocations WHERE expires_at <= $1`, t.now())
	if err != nil {
		return 0, fmt.Errorf("purge revocations: %w", err)
	}
	return res.RowsAffected()
}
