// Package cache provides the optional Redis read-through cache for
// get-by-id lookups. Writes invalidate the cached entry.
//
// A read-through fill is guarded by a lease: on a miss the reader parks a
// short-lived lease token under the key before reading storage, and the fill
// only lands if that token is still there. Invalidation deletes the key, so a
// write that races a fill always wins.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gogotex/usergroups/internal/document"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	leasePrefix = "lease:"
	leaseTTL    = 5 * time.Second
)

// RedisCache stores documents as JSON under "<prefix><id>" with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a cache namespaced by prefix (e.g. "users:").
func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) key(id string) string {
	return c.prefix + id
}

// Get returns the cached document. A miss, or a key holding an outstanding
// lease, is (nil, false, nil).
func (c *RedisCache) Get(ctx context.Context, id string) (document.Document, bool, error) {
	s, err := c.client.Get(ctx, c.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if strings.HasPrefix(s, leasePrefix) {
		return nil, false, nil
	}
	var d document.Document
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		return nil, false, err
	}
	return d, true, nil
}

// Lease reserves the right to fill id. It returns "" when the key is already
// populated or leased by another reader.
func (c *RedisCache) Lease(ctx context.Context, id string) (string, error) {
	token := leasePrefix + uuid.NewString()
	ok, err := c.client.SetNX(ctx, c.key(id), token, leaseTTL).Result()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return token, nil
}

// Fill stores d if the lease token is still held. A lease lost to an
// invalidation is not an error; the document is simply not cached.
func (c *RedisCache) Fill(ctx context.Context, d document.Document, token string) error {
	if token == "" {
		return nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	key := c.key(d.ID())
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) || (err == nil && cur != token) {
			return redis.TxFailedErr
		}
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, b, c.ttl)
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *RedisCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}
