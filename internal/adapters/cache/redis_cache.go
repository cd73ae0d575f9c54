package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/AchilleasB/baby-kliniek/clinic-service/internal/config"
)

// RedisCache backs the dashboard read-through cache. Every call goes through
// a circuit breaker so a redis outage degrades to direct database reads
// instead of hanging dashboard requests.
type RedisCache struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
		cb:     config.NewCircuitBreaker("Redis-Cache"),
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	result, err := c.cb.Execute(func() (any, error) {
		val, err := c.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return val, nil
	})
	if err != nil {
		return "", false, err
	}
	if result == nil {
		return "", false, nil
	}
	return result.(string), true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	_, err := c.cb.Execute(func() (any, error) {
		return nil, c.client.Set(ctx, key, value, ttl).Err()
	})
	return err
}

// RedisTokenBlacklist checks revoked bearer tokens written by the identity
// service on logout. Keys hold the sha256 hex of the raw token.
type RedisTokenBlacklist struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker
}

func NewRedisTokenBlacklist(client *redis.Client) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{
		client: client,
		cb:     config.NewCircuitBreaker("Redis-Auth"),
	}
}

func (b *RedisTokenBlacklist) IsBlacklisted(ctx context.Context, tokenHash string) (bool, error) {
	result, err := b.cb.Execute(func() (any, error) {
		count, err := b.client.Exists(ctx, "blacklist:"+tokenHash).Result()
		if err != nil {
			return nil, err
		}
		return count > 0, nil
	})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}
