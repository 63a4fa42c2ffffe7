package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"noticebase/pkg/platform/sentinel"
)

// PostgresStore reads officer credentials from officer_credentials.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Find(ctx context.Context, username string) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, `SELECT password_hash FROM officer_credentials WHERE username = $1`, username).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("officer %q: %w", username, sentinel.ErrNotFound)
		}
		return "", fmt.Errorf("find credentials: %w", err)
	}
	return hash, nil
}

// Upsert sets the hash for username, replacing any previous one.
func (s *PostgresStore) Upsert(ctx context.Context, username, hash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO officer_credentials (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
	`, username, hash)
	if err != nil {
		return fmt.Errorf("upsert credentials: %w", err)
	}
	return nil
}
