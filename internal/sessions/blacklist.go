package sessions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "blacklist:token:"

// Blacklist records tokens revoked by logout until they would have expired.
// A Blacklist without a Redis client (or a nil *Blacklist) revokes nothing.
type Blacklist struct {
	client *redis.Client
}

func NewBlacklist(c *redis.Client) *Blacklist {
	return &Blacklist{client: c}
}

// Enabled reports whether revocations are persisted.
func (b *Blacklist) Enabled() bool {
	return b != nil && b.client != nil
}

// Revoke stores the token for ttl. Non-positive ttls are ignored since the
// token is already expired.
func (b *Blacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if !b.Enabled() || token == "" || ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, key(token), "1", ttl).Err()
}

// IsRevoked returns true when the token is present in the blacklist.
func (b *Blacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	if !b.Enabled() || token == "" {
		return false, nil
	}
	n, err := b.client.Exists(ctx, key(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// tokens are hashed so the raw credential never lands in Redis
func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + hex.EncodeToString(sum[:])
}
