package fingerprintstore

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis key prefix for recorded fingerprint hashes
const cacheKeyPrefix = "biomint:fp:"

// cachedStore fronts a Store with a Redis membership cache. The cache only
// answers known-positive lookups; postgres stays the arbiter for everything
// else, including every Record call. Cache failures degrade to the inner
// store and never fail a request.
type cachedStore struct {
	inner  Store
	client *redis.Client
	logger *zap.Logger
}

// NewCachedStore wraps inner with a Redis advisory cache.
func NewCachedStore(inner Store, client *redis.Client, logger *zap.Logger) *cachedStore {
	return &cachedStore{
		inner:  inner,
		client: client,
		logger: logger,
	}
}

func (s *cachedStore) Exists(ctx context.Context, identityHash, photoHash, fingerprintHash string) (bool, error) {
	n, err := s.client.Exists(ctx,
		cacheKeyPrefix+identityHash,
		cacheKeyPrefix+photoHash,
		cacheKeyPrefix+fingerprintHash,
	).Result()
	if err != nil {
		s.logger.Warn("fingerprint cache lookup failed, falling back to store", zap.Error(err))
	} else if n > 0 {
		return true, nil
	}

	return s.inner.Exists(ctx, identityHash, photoHash, fingerprintHash)
}

func (s *cachedStore) Record(ctx context.Context, identityHash, photoHash, fingerprintHash string) error {
	if err := s.inner.Record(ctx, identityHash, photoHash, fingerprintHash); err != nil {
		return err
	}

	// Store "1" as a simple marker; the key existence is what matters.
	// Records are append-only so the entries never expire.
	pipe := s.client.Pipeline()
	for _, hash := range []string{identityHash, photoHash, fingerprintHash} {
		pipe.Set(ctx, cacheKeyPrefix+hash, "1", 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn("failed to populate fingerprint cache", zap.Error(err))
	}

	return nil
}
