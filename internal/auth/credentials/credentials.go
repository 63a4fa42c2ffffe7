// Package credentials stores officer login credentials as bcrypt hashes.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	dErrors "noticebase/pkg/domain-errors"
)

// Store looks up the password hash for an officer. Missing officers yield
// sentinel.ErrNotFound.
type Store interface {
	Find(ctx context.Context, username string) (string, error)
}

// Hash creates a bcrypt hash of password.
func Hash(password string) (string, error) {
	if password == "" {
		return "", dErrors.New(dErrors.CodeValidation, "password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeValidation, "password is too long")
		}
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify checks password against a bcrypt hash.
func Verify(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return fmt.Errorf("could not verify password: %w", err)
	}
	return nil
}

// Parse reads "user:hash" pairs separated by commas. Bcrypt hashes never
// contain either separator.
func Parse(raw string) (map[string]string, error) {
	out := make(map[string]string)
	for pair := range strings.SplitSeq(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		user, hash, ok := strings.Cut(pair, ":")
		user, hash = strings.TrimSpace(user), strings.TrimSpace(hash)
		if !ok || user == "" || hash == "" {
			return nil, fmt.Errorf("malformed credential entry %q", pair)
		}
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("credential for %q is not a bcrypt hash: %w", user, err)
		}
		out[user] = hash
	}
	return out, nil
}
