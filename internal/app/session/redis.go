package session

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the session under one Redis key. Each operation is a single
// Redis command and therefore atomic.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore returns a RedisStore storing slot under namespace:slot.
func NewRedisStore(client *redis.Client, namespace, slot string) *RedisStore {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if slot == "" {
		slot = DefaultSlot
	}
	return &RedisStore{client: client, key: namespace + ":" + slot}
}

// Save implements Store. The key does not expire.
func (r *RedisStore) Save(ctx context.Context, blob []byte) error {
	return r.client.Set(ctx, r.key, blob, 0).Err()
}

// Load implements Store.
func (r *RedisStore) Load(ctx context.Context) ([]byte, bool, error) {
	blob, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return blob, true, nil
}

// Clear implements Store.
func (r *RedisStore) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
