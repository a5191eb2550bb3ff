package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var ErrNotObtained = errors.New("lock not obtained")

const (
	DefaultTTL        = 30 * time.Second
	defaultRetryDelay = 100 * time.Millisecond
)

// Redis is a distributed lock shared by every API instance using the same Redis.
type Redis struct {
	client  *redislock.Client
	prefix  string
	ttl     time.Duration
	retries int
}

// NewRedisClient connects to Redis and verifies the connection with PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: 20,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// NewRedis wraps rdb. Keys are namespaced with prefix. Waiting for a held
// lock retries for roughly the lock TTL before giving up.
func NewRedis(rdb redislock.RedisClient, prefix string, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{
		client:  redislock.New(rdb),
		prefix:  prefix,
		ttl:     ttl,
		retries: int(ttl / defaultRetryDelay),
	}
}

func (r *Redis) Lock(ctx context.Context, key string) (func(context.Context) error, error) {
	lock, err := r.client.Obtain(ctx, r.prefix+key, r.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(defaultRetryDelay), r.retries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", ErrNotObtained, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}
	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return err
		}
		return nil
	}, nil
}
