// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// suggest.go provides a Valkey-backed cache for generated SEO suggestions.
// Identical generation requests (same type, title, description and content)
// reuse the stored suggestions instead of calling the LLM again.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"sagacms/internal/seo"
)

const (
	// suggestKeyPrefix is the Valkey key prefix for cached suggestions.
	suggestKeyPrefix = "seo:"

	// DefaultSuggestionTTL is how long generated suggestions stay cached.
	DefaultSuggestionTTL = 1 * time.Hour
)

// SuggestionCache stores SEO suggestions in Valkey keyed by the request hash.
type SuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSuggestionCache creates a suggestion cache backed by the given Valkey client.
func NewSuggestionCache(client *redis.Client, ttl time.Duration) *SuggestionCache {
	if ttl == 0 {
		ttl = DefaultSuggestionTTL
	}
	return &SuggestionCache{client: client, ttl: ttl}
}

// Get retrieves cached suggestions for a request key. Returns false on miss
// or on any Valkey error; the caller falls through to generation.
func (sc *SuggestionCache) Get(ctx context.Context, key string) (*seo.Suggestions, bool) {
	val, err := sc.client.Get(ctx, suggestKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("suggestion cache get error", "key", key, "error", err)
		return nil, false
	}

	var s seo.Suggestions
	if err := json.Unmarshal(val, &s); err != nil {
		slog.Warn("suggestion cache decode error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("suggestion cache hit", "key", key)
	return &s, true
}

// Set stores suggestions for a request key with the configured TTL.
// Errors are logged, not returned; a failed cache write never fails a request.
func (sc *SuggestionCache) Set(ctx context.Context, key string, s *seo.Suggestions) {
	payload, err := json.Marshal(s)
	if err != nil {
		slog.Warn("suggestion cache encode error", "key", key, "error", err)
		return
	}
	if err := sc.client.Set(ctx, suggestKeyPrefix+key, payload, sc.ttl).Err(); err != nil {
		slog.Warn("suggestion cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached suggestion by scanning for the prefix.
// Called when an SEO prompt template is edited, since any cached result
// could have been produced by the old prompt.
func (sc *SuggestionCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := sc.client.Scan(ctx, cursor, suggestKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("suggestion cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := sc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("suggestion cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("suggestion cache cleared", "deleted", deleted)
	}
}
