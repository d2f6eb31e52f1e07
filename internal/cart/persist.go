package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Fashion-Store/Aradaa/internal/localstore"
	"github.com/redis/go-redis/v9"
)

// FileStore persists carts as JSON documents in a local directory.
type FileStore struct {
	dir *localstore.Dir
}

func NewFileStore(dir *localstore.Dir) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) Load(_ context.Context, key string) ([]Item, error) {
	var items []Item
	if _, err := f.dir.Get(key, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (f *FileStore) Save(_ context.Context, key string, items []Item) error {
	if len(items) == 0 {
		return f.dir.Delete(key)
	}
	return f.dir.Put(key, items)
}

// DefaultRedisTTL keeps an idle cart around for thirty days.
const DefaultRedisTTL = 30 * 24 * time.Hour

// RedisClient is the subset of *redis.Client the cart needs.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore persists carts as JSON values under "cart:<key>".
type RedisStore struct {
	client RedisClient
	ttl    time.Duration
}

func NewRedisStore(client RedisClient, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(key string) string { return "cart:" + key }

func (r *RedisStore) Load(ctx context.Context, key string) ([]Item, error) {
	data, err := r.client.Get(ctx, redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var items []Item
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

func (r *RedisStore) Save(ctx context.Context, key string, items []Item) error {
	if len(items) == 0 {
		if err := r.client.Del(ctx, redisKey(key)).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
