package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/travigo/tripsearch/pkg/tripquery"
)

const cacheKeyPrefix = "tripsearch:session:"

// CacheStore keeps sessions in redis so any web-api instance can serve them
type CacheStore struct {
	Cache *cache.Cache[string]
}

func NewCacheStore(client *redis.Client, ttl time.Duration) *CacheStore {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(ttl))

	return &CacheStore{
		Cache: cache.New[string](redisStore),
	}
}

func (c *CacheStore) Get(ctx context.Context, id string) (tripquery.TripQueryVariables, error) {
	var variables tripquery.TripQueryVariables

	encoded, err := c.Cache.Get(ctx, cacheKeyPrefix+id)
	if errors.Is(err, store.NotFound{}) || errors.Is(err, redis.Nil) {
		return variables, ErrNotFound
	} else if err != nil {
		return variables, fmt.Errorf("loading session %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(encoded), &variables); err != nil {
		return variables, fmt.Errorf("decoding session %s: %w", id, err)
	}

	return variables, nil
}

func (c *CacheStore) Put(ctx context.Context, id string, variables tripquery.TripQueryVariables) error {
	encoded, err := json.Marshal(variables)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", id, err)
	}

	if err := c.Cache.Set(ctx, cacheKeyPrefix+id, string(encoded)); err != nil {
		return fmt.Errorf("storing session %s: %w", id, err)
	}

	return nil
}
