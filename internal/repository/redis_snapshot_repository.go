package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "oompa:snapshot:"

type redisSnapshotRepository struct {
	client *redis.Client
}

// NewRedisSnapshotRepository stores snapshots as plain redis strings without expiry;
// freshness is decided by the cache policy, not by redis.
func NewRedisSnapshotRepository(client *redis.Client) SnapshotRepository {
	return &redisSnapshotRepository{client: client}
}

func (r *redisSnapshotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}

func (r *redisSnapshotRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, redisKeyPrefix+key, value, 0).Err()
}

func (r *redisSnapshotRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, redisKeyPrefix+key).Err()
}
