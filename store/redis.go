package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisAddr = "localhost:6379"

// redisBackend keeps each profile in one hash: bossjack:<profile>.
type redisBackend struct {
	rdb *redis.Client
}

func OpenRedis(ctx context.Context, addr, profile string) (*Store, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = defaultRedisAddr
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return newStore(KindRedis, profile, &redisBackend{rdb: rdb}), nil
}

func hashKey(profile string) string { return "bossjack:" + profile }

func (r *redisBackend) get(ctx context.Context, profile, key string) (string, bool, error) {
	value, err := r.rdb.HGet(ctx, hashKey(profile), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *redisBackend) set(ctx context.Context, profile, key, value string) error {
	return r.rdb.HSet(ctx, hashKey(profile), key, value).Err()
}

func (r *redisBackend) close() error {
	return r.rdb.Close()
}
