package queue

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dedupKeyPrefix = "examgate:event:"
	dedupTTL       = 24 * time.Hour
)

// DedupStore claims event IDs so consumers can drop redeliveries. Claim
// returns false when the ID was already taken; Release hands a claim back
// so a failed delivery can be retried.
type DedupStore interface {
	Claim(ctx context.Context, eventID string) (bool, error)
	Release(ctx context.Context, eventID string) error
}

// RedisDedup is the production DedupStore: SETNX with a TTL, so the claim
// set cannot grow without bound.
type RedisDedup struct {
	rdb *redis.Client
}

func NewRedisDedup(rdb *redis.Client) *RedisDedup {
	return &RedisDedup{rdb: rdb}
}

func (d *RedisDedup) Claim(ctx context.Context, eventID string) (bool, error) {
	return d.rdb.SetNX(ctx, dedupKeyPrefix+eventID, 1, dedupTTL).Result()
}

func (d *RedisDedup) Release(ctx context.Context, eventID string) error {
	return d.rdb.Del(ctx, dedupKeyPrefix+eventID).Err()
}
