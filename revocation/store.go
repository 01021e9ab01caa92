package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrUnavailable indicates the backing Redis could not be reached.
	ErrUnavailable = errors.New("revocation store unavailable")
)

// Store is a Redis-backed set of revoked token ids. Entries carry a TTL
// equal to the remaining lifetime of the revoked token, so the set is
// self-pruning.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a Store on the given Redis client. An empty prefix
// defaults to "arv".
func NewStore(redisClient redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "arv"
	}
	return &Store{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *Store) key(tokenID string) string {
	return s.prefix + ":" + tokenID
}

// Revoke marks a token id as revoked for the given remaining lifetime.
// A non-positive ttl means the token has already expired and nothing
// needs to be recorded. Revoking the same id twice is a no-op.
func (s *Store) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("revocation: empty token id")
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.redis.Set(ctx, s.key(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// IsRevoked reports whether a token id is in the revocation set.
func (s *Store) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.redis.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return n > 0, nil
}
