package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "hearth:delivered:"

// RedisOptions configures the redis ledger.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Redis is a ledger whose keys expire on their own after the TTL, so Prune
// has nothing to do.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ Ledger = (*Redis)(nil)

// OpenRedis connects to redis and verifies the connection.
func OpenRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", opts.Addr, err)
	}
	return NewRedis(rdb, opts.TTL), nil
}

// NewRedis wraps an existing client.
func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultRetention
	}
	return &Redis{rdb: rdb, ttl: ttl}
}

func (r *Redis) Seen(ctx context.Context, key string) (bool, error) {
	n, err := r.rdb.Exists(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("ledger seen %q: %w", key, err)
	}
	return n > 0, nil
}

func (r *Redis) Claim(ctx context.Context, key string, at time.Time) (bool, error) {
	ok, err := r.rdb.SetNX(ctx, redisKeyPrefix+key, at.Unix(), r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("ledger claim %q: %w", key, err)
	}
	return ok, nil
}

func (r *Redis) Release(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("ledger release %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Prune(context.Context, time.Time) (int, error) { return 0, nil }

// Close closes the client.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
