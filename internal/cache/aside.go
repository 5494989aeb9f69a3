package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"glimpse/internal/observability"

	"github.com/redis/go-redis/v9"
)

func keyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

// Aside implements the cache-aside pattern: when the key is cached, unmarshal
// it into dest and return. Otherwise call load (which fills dest), store dest
// under key with the given TTL, and return load's error. A missing or failing
// Redis never fails the call; load runs and its result is used directly.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, load func() error) error {
	if client != nil {
		raw, err := client.Get(ctx, key).Result()
		switch {
		case err == nil:
			if jsonErr := json.Unmarshal([]byte(raw), dest); jsonErr == nil {
				observability.CacheRequests.WithLabelValues(keyPrefix(key), "hit").Inc()
				return nil
			}
			// Corrupt entry: drop it and fall through to the loader.
			client.Del(ctx, key)
		case errors.Is(err, redis.Nil):
			observability.CacheRequests.WithLabelValues(keyPrefix(key), "miss").Inc()
		}
	}

	if err := load(); err != nil {
		return err
	}

	if client != nil {
		if raw, jsonErr := json.Marshal(dest); jsonErr == nil {
			client.Set(ctx, key, raw, ttl)
		}
	}

	return nil
}
