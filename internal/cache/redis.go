package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ABDULS21985/vivaexcel-sub014/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Operation names a cacheable recommendation operation. Each operation has
// its own key space and TTL tier.
type Operation string

const (
	OpSimilar Operation = "similar"
	OpFeed    Operation = "feed"
	OpAI      Operation = "ai"
)

const (
	DefaultShortTTL = 30 * time.Minute
	DefaultLongTTL  = 60 * time.Minute
)

type Cache struct {
	client   *redis.Client
	shortTTL time.Duration
	longTTL  time.Duration
}

func NewCache(client *redis.Client, shortTTL, longTTL time.Duration) *Cache {
	if shortTTL <= 0 {
		shortTTL = DefaultShortTTL
	}
	if longTTL <= 0 {
		longTTL = DefaultLongTTL
	}
	return &Cache{client: client, shortTTL: shortTTL, longTTL: longTTL}
}

// Key composes operation + primary id + limit so requests differing only in
// requested count do not collide.
func Key(op Operation, id string, limit int) string {
	return fmt.Sprintf("rec:%s:%s:limit:%d", op, id, limit)
}

// TTL returns the expiry tier for an operation: AI results are expensive to
// recompute and cache longer, everything else takes the short tier.
func (c *Cache) TTL(op Operation) time.Duration {
	if op == OpAI {
		return c.longTTL
	}
	return c.shortTTL
}

// Get recommendations from cache. The second return reports whether the key
// was present.
func (c *Cache) Get(ctx context.Context, op Operation, id string, limit int) ([]domain.RecommendedProduct, bool, error) {
	key := Key(op, id, limit)
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var recs []domain.RecommendedProduct
	if err := json.Unmarshal([]byte(val), &recs); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached recommendations %s: %w", key, err)
	}
	return recs, true, nil
}

// Store recommendations in cache
func (c *Cache) Set(ctx context.Context, op Operation, id string, limit int, recs []domain.RecommendedProduct) error {
	key := Key(op, id, limit)
	val, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, key, val, c.TTL(op)).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
