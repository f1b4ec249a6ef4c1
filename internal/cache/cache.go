package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a best-effort key-value accelerator backed by Redis. Every
// operation swallows and logs its errors: a broken or absent cache must
// never break a request. A Cache with a nil client is a valid no-op cache.
type Cache struct {
	client *redis.Client
}

// New creates a Cache from a Redis connection URL. An empty URL or a URL
// that fails to parse disables caching.
func New(redisURL string) *Cache {
	if redisURL == "" {
		log.Printf("[Cache] REDIS_URL not set, cache is disabled")
		return &Cache{}
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("[Cache] Invalid REDIS_URL (%v), cache is disabled", err)
		return &Cache{}
	}

	log.Printf("[Cache] Connecting to Redis at %s", opt.Addr)
	return &Cache{client: redis.NewClient(opt)}
}

// Get retrieves a cached value into dest. Returns false on miss or any error.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[Cache] GET %s failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("[Cache] GET %s: bad cached value: %v", key, err)
		return false
	}
	return true
}

// Set caches a value with a TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("[Cache] SET %s: marshal failed: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("[Cache] SET %s failed: %v", key, err)
	}
}

// Del removes cached values
func (c *Cache) Del(ctx context.Context, keys ...string) {
	if c.client == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[Cache] DEL %v failed: %v", keys, err)
	}
}

// Close closes the underlying Redis connection, if any.
func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Key helpers, centralized so keys stay consistent across the codebase.

func SessionHistoryKey(userID string, kind string) string {
	if kind == "" {
		kind = "all"
	}
	return fmt.Sprintf("sessions:%s:%s", userID, kind)
}

func ProfileKey(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

func DialectProfileKey(userID string) string {
	return fmt.Sprintf("dialect:%s", userID)
}
