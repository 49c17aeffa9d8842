package params

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// defaultHashKey is the redis hash the training workflow writes its
// parameters into.
const defaultHashKey = "endpointd:params"

// RedisStore reads parameters from a redis hash. Unlike FileStore it reads
// live: each Get is a HGET against the server.
type RedisStore struct {
	client  *redis.Client
	hashKey string
}

// NewRedisStore connects a store to an existing redis client. An empty
// hashKey selects the default.
func NewRedisStore(client *redis.Client, hashKey string) *RedisStore {
	if hashKey == "" {
		hashKey = defaultHashKey
	}
	return &RedisStore{client: client, hashKey: hashKey}
}

// DialRedis is a convenience constructor from an address string.
func DialRedis(addr, hashKey string) *RedisStore {
	return NewRedisStore(redis.NewClient(&redis.Options{Addr: addr}), hashKey)
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.HGet(ctx, s.hashKey, key).Result()
	if err == redis.Nil {
		return "", ErrKeyNotFound(key)
	}
	if err != nil {
		return "", fmt.Errorf("redis hget %s %s: %w", s.hashKey, key, err)
	}
	return v, nil
}
