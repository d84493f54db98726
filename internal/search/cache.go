package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by a Store that holds no value for a key.
var ErrCacheMiss = errors.New("cache miss")

// Store is the byte store behind CachedClient.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CacheObserver receives hit, miss and error events.
type CacheObserver interface {
	ObserveSearchCache(result string)
}

// Cache event labels.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// CachedClient serves repeated queries from a Store. Store failures are
// logged and bypassed.
type CachedClient struct {
	next   SearchClient
	store  Store
	ttl    time.Duration
	logger *slog.Logger
	obs    CacheObserver
}

// NewCachedClient wraps next with a cache. obs may be nil.
func NewCachedClient(next SearchClient, store Store, ttl time.Duration, logger *slog.Logger, obs CacheObserver) *CachedClient {
	return &CachedClient{next: next, store: store, ttl: ttl, logger: logger, obs: obs}
}

// CacheKey normalizes query into a store key.
func CacheKey(query string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(query), " "))
	sum := sha256.Sum256([]byte(normalized))
	return "scriptforge:search:" + hex.EncodeToString(sum[:])
}

// Search returns cached results when present, otherwise queries next and
// stores its answer. Failed searches are never cached.
func (c *CachedClient) Search(ctx context.Context, query string) (*Results, error) {
	key := CacheKey(query)

	data, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var cached Results
		if jsonErr := json.Unmarshal(data, &cached); jsonErr == nil {
			c.observe(CacheHit)
			return &cached, nil
		}
		c.logger.Warn("discarding corrupt search cache entry", "key", key)
		c.observe(CacheError)
	case errors.Is(err, ErrCacheMiss):
		c.observe(CacheMiss)
	default:
		c.logger.Warn("search cache read failed", "error", err)
		c.observe(CacheError)
	}

	results, err := c.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(results); err == nil {
		if err := c.store.Set(ctx, key, encoded, c.ttl); err != nil {
			c.logger.Warn("search cache write failed", "error", err)
			c.observe(CacheError)
		}
	}

	return results, nil
}

func (c *CachedClient) observe(result string) {
	if c.obs != nil {
		c.obs.ObserveSearchCache(result)
	}
}

// RedisStore is a Store backed by Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Store on an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get returns ErrCacheMiss when the key does not exist.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return data, err
}

// Set stores value under key with ttl.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// Ping checks the connection to Redis.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
