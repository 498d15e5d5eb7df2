package cart

import (
	"context"
	"errors"
	"time"

	"karesave-backend/pkg/cache"
)

// PersistedState is what the side-store keeps for one session.
type PersistedState struct {
	Lines   []Line    `json:"lines"`
	Version uint64    `json:"version"`
	SavedAt time.Time `json:"saved_at"`
}

// SideStore is a best-effort durable mirror of a cart. It is a cache, never
// the source of truth.
type SideStore interface {
	Save(ctx context.Context, key string, state PersistedState) error
	Load(ctx context.Context, key string) (PersistedState, bool, error)
	Delete(ctx context.Context, key string) error
}

const keyPrefix = "cart"

// RedisSideStore mirrors carts in Redis under "cart:<session>".
type RedisSideStore struct {
	cache *cache.RedisCache
	ttl   time.Duration
}

func NewRedisSideStore(c *cache.RedisCache, ttl time.Duration) *RedisSideStore {
	return &RedisSideStore{cache: c, ttl: ttl}
}

func (r *RedisSideStore) Save(ctx context.Context, key string, state PersistedState) error {
	return r.cache.SetWithPrefix(ctx, keyPrefix, key, state, r.ttl)
}

func (r *RedisSideStore) Load(ctx context.Context, key string) (PersistedState, bool, error) {
	var state PersistedState
	err := r.cache.GetWithPrefix(ctx, keyPrefix, key, &state)
	if errors.Is(err, cache.ErrCacheMiss) {
		return PersistedState{}, false, nil
	}
	if err != nil {
		return PersistedState{}, false, err
	}
	return state, true, nil
}

// Delete removes the mirror of a closed session.
func (r *RedisSideStore) Delete(ctx context.Context, key string) error {
	return r.cache.DeleteWithPrefix(ctx, keyPrefix, key)
}
