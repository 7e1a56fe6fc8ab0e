package immosim

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Simulation results are cheap to recompute and side-effect free, so caching
// is only an optimization for the form server. The cache stores the rendered
// report keyed by a digest of the full input, never a partial result.

// ResultCache caches rendered simulation reports keyed by their input digest.
type ResultCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// CacheKey returns a stable digest of the simulation inputs: the config and
// every building definition, in order.
func CacheKey(cfg Config, buildings []Building) (string, error) {
	h := sha1.New()
	fmt.Fprintf(h, "cfg:%v:%d\n", cfg.OccupancyGrowth, cfg.MaxBuildings)
	for _, b := range buildings {
		data, err := json.Marshal(b)
		if err != nil {
			return "", fmt.Errorf("cannot digest building %q: %w", b.Name, err)
		}
		h.Write(data)
		h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// MemoryCache is a process-local ResultCache. The zero value is not usable,
// use NewMemoryCache.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

func (c *MemoryCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *MemoryCache) Set(key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

// RedisCache is a ResultCache backed by a Redis server, for serving behind
// more than one process.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(addr string) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: rdb,
		ctx:    context.Background(),
	}
}

func (r *RedisCache) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}
