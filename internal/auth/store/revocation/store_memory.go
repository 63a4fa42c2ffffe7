package revocation

import (
	"context"
	"sync"
	"time"
)

// InMemoryTRL keeps revoked jtis in process memory. Expired entries are
// dropped lazily on lookup and on each revocation.
type InMemoryTRL struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	clock   Clock
}

type InMemoryTRLOption func(*InMemoryTRL)

// WithMemoryClock sets the clock function for testability.
func WithMemoryClock(clock Clock) InMemoryTRLOption {
	return func(trl *InMemoryTRL) {
		if clock != nil {
			trl.clock = clock
		}
	}
}

func NewInMemoryTRL(opts ...InMemoryTRLOption) *InMemoryTRL {
	trl := &InMemoryTRL{
		revoked: make(map[string]time.Time),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(trl)
	}
	return trl
}

func (t *InMemoryTRL) RevokeToken(_ context.Context, jti string, ttl time.Duration) error {
	if err := validateTTL(ttl); err != nil {
		return err
	}
	if jti == "" {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.clock()
	for id, expiresAt := range t.revoked {
		if !now.Before(expiresAt) {
			delete(t.revoked, id)
		}
	}
	t.revoked[jti] = now.Add(ttl)
	return nil
}

func (t *InMemoryTRL) IsRevoked(_ context.Context, jti string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	expiresAt, ok := t.revoked[jti]
	if !ok {
		return false, nil
	}
	if !t.clock().Before(expiresAt) {
		delete(t.revoked, jti)
		return false, nil
	}
	return true, nil
}
