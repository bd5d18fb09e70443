// Copyright (c) 2026 D42X. All rights reserved.

package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces cache entries so Clear cannot touch unrelated keys
// in a shared Redis instance.
const keyPrefix = "d42x:cache:"

// Redis is a [Cache] backed by a Redis instance, for deployments running
// more than one API replica behind a load balancer.
//
// Backend errors never propagate: a failed read is a miss and a failed
// write is a no-op, keeping the store the source of truth.
//
// Each Redis front carries its own namespace under the shared prefix, so
// Clear on one front (e.g. meme pages) cannot evict another's entries.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis creates a Redis-backed cache front with its own namespace and
// per-entry TTL.
func NewRedis(client *redis.Client, namespace string, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		prefix: keyPrefix + namespace + ":",
		ttl:    ttl,
	}
}

// Get implements [Cache].
func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// Put implements [Cache].
func (r *Redis) Put(ctx context.Context, key, value string) {
	_ = r.client.Set(ctx, r.prefix+key, value, r.ttl).Err()
}

// Remove implements [Cache].
func (r *Redis) Remove(ctx context.Context, key string) {
	_ = r.client.Del(ctx, r.prefix+key).Err()
}

// Clear implements [Cache].
//
// SCAN is used instead of KEYS so a large shared instance is not blocked;
// entries are deleted in batches as the iterator yields them.
func (r *Redis) Clear(ctx context.Context) {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()

	batch := make([]string, 0, 64)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			_ = r.client.Del(ctx, batch...).Err()
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		_ = r.client.Del(ctx, batch...).Err()
	}
}
