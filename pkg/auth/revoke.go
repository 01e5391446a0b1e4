package auth

import (
	"context"
	"time"

	"github.com/shashiranjanraj/storerating/pkg/cache"
)

const revokedPrefix = "auth:revoked:"

// Revocations is the deny-list of logged-out token ids. Entries live until
// the token would have expired anyway.
type Revocations struct {
	store cache.Store
	now   func() time.Time
}

func NewRevocations(store cache.Store) *Revocations {
	return &Revocations{store: store, now: time.Now}
}

// Revoke denies c's jti for the rest of its lifetime.
func (r *Revocations) Revoke(ctx context.Context, c *Claims) error {
	if c == nil || c.ID == "" {
		return nil
	}
	ttl := time.Minute
	if c.ExpiresAt != nil {
		ttl = c.ExpiresAt.Sub(r.now())
	}
	if ttl <= 0 {
		return nil
	}
	return r.store.Set(ctx, revokedPrefix+c.ID, true, ttl)
}

// IsRevoked reports whether the token id has been logged out.
func (r *Revocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	return r.store.Has(ctx, revokedPrefix+jti)
}
