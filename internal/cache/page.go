// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed cache of public API responses. Each
// entry is indexed by the tags it was stored with and by its request path,
// so revalidation can drop everything derived from one content type or
// one URL without knowing the exact keys.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pageKeyPrefix = "page:"
	tagKeyPrefix  = "tag:"
	pathKeyPrefix = "path:"

	// DefaultPageTTL is how long a response stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// Store is the response cache used by the public handlers.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte, tags ...string)
	RevalidateTag(ctx context.Context, tag string) error
	RevalidatePath(ctx context.Context, path string) error
	RevalidateAll(ctx context.Context) error
}

// PageCache manages response caching in Valkey.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Get retrieves a cached response. Errors count as misses.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores a response under key (a request URI) and indexes it by tags
// and by the key's path.
func (pc *PageCache) Set(ctx context.Context, key string, body []byte, tags ...string) {
	_, err := pc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, pageKeyPrefix+key, body, pc.ttl)
		for _, idx := range indexKeys(key, tags) {
			pipe.SAdd(ctx, idx, key)
			// Index sets outlive their pages by one TTL so stale members
			// are harmless and eventually dropped.
			pipe.Expire(ctx, idx, 2*pc.ttl)
		}
		return nil
	})
	if err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// RevalidateTag drops every response stored with tag.
func (pc *PageCache) RevalidateTag(ctx context.Context, tag string) error {
	n, err := pc.dropIndex(ctx, tagKeyPrefix+tag)
	if err != nil {
		return fmt.Errorf("revalidate tag %s: %w", tag, err)
	}
	slog.Debug("page cache tag revalidated", "tag", tag, "deleted", n)
	return nil
}

// RevalidatePath drops every response stored for path, including
// variants with a query string.
func (pc *PageCache) RevalidatePath(ctx context.Context, path string) error {
	path = normalizePath(path)
	n, err := pc.dropIndex(ctx, pathKeyPrefix+path)
	if err != nil {
		return fmt.Errorf("revalidate path %s: %w", path, err)
	}
	if err := pc.client.Del(ctx, pageKeyPrefix+path).Err(); err != nil {
		return fmt.Errorf("revalidate path %s: %w", path, err)
	}
	slog.Debug("page cache path revalidated", "path", path, "deleted", n)
	return nil
}

// RevalidateAll removes every cached response and index by scanning the
// key prefixes.
func (pc *PageCache) RevalidateAll(ctx context.Context) error {
	var deleted int
	for _, prefix := range []string{pageKeyPrefix, tagKeyPrefix, pathKeyPrefix} {
		var cursor uint64
		for {
			keys, next, err := pc.client.Scan(ctx, cursor, prefix+"*", 100).Result()
			if err != nil {
				return fmt.Errorf("page cache scan: %w", err)
			}
			if len(keys) > 0 {
				if err := pc.client.Del(ctx, keys...).Err(); err != nil {
					return fmt.Errorf("page cache bulk delete: %w", err)
				}
				deleted += len(keys)
			}
			cursor = next
			if cursor == 0 {
				break
			}
		}
	}
	slog.Info("page cache fully cleared", "deleted", deleted)
	return nil
}

// dropIndex deletes the pages listed in an index set and the set itself.
func (pc *PageCache) dropIndex(ctx context.Context, idx string) (int, error) {
	members, err := pc.client.SMembers(ctx, idx).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}
	keys := make([]string, 0, len(members)+1)
	for _, m := range members {
		keys = append(keys, pageKeyPrefix+m)
	}
	keys = append(keys, idx)
	if err := pc.client.Del(ctx, keys...).Err(); err != nil {
		return 0, err
	}
	return len(members), nil
}

// indexKeys returns the tag and path sets a key belongs to.
func indexKeys(key string, tags []string) []string {
	out := make([]string, 0, len(tags)+1)
	for _, t := range tags {
		if t != "" {
			out = append(out, tagKeyPrefix+t)
		}
	}
	return append(out, pathKeyPrefix+PathOf(key))
}

// PathOf strips the query string from a cache key.
func PathOf(key string) string {
	if i := strings.IndexByte(key, '?'); i >= 0 {
		key = key[:i]
	}
	return normalizePath(key)
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}
