package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis key prefix
const redisKeyPrefix = "infinitybox:"

// RedisBackend stores values in Redis under a fixed prefix
type RedisBackend struct {
	client *redis.Client
}

// NewRedisBackend wraps an existing client
func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func (rb *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := rb.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Set stores value without expiration; a session lives until it is ended.
func (rb *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	return rb.client.Set(ctx, redisKeyPrefix+key, value, 0).Err()
}

func (rb *RedisBackend) Delete(ctx context.Context, key string) error {
	return rb.client.Del(ctx, redisKeyPrefix+key).Err()
}

func (rb *RedisBackend) Close() error {
	return rb.client.Close()
}
