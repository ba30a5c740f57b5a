// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"sagacms/internal/seo"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "seo:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, "")
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	// Verify connection.
	ctx := context.Background()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestSuggestionCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	sc := NewSuggestionCache(client, 1*time.Minute)

	ctx := context.Background()
	req := seo.Request{Type: seo.KindStartup, Title: "Acme", Description: "We build widgets"}
	key := req.CacheKey()

	// Miss.
	if _, ok := sc.Get(ctx, key); ok {
		t.Error("expected cache miss")
	}

	// Set.
	want := &seo.Suggestions{
		MetaTitle:       "Acme - Widgets",
		MetaDescription: "Build better widgets with Acme",
	}
	sc.Set(ctx, key, want)

	// Hit.
	got, ok := sc.Get(ctx, key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.MetaTitle != want.MetaTitle || got.MetaDescription != want.MetaDescription {
		t.Errorf("suggestions mismatch: got %+v, want %+v", got, want)
	}
}

func TestSuggestionCacheKeyIsolation(t *testing.T) {
	client := testValkeyClient(t)
	sc := NewSuggestionCache(client, 1*time.Minute)

	ctx := context.Background()
	reqA := seo.Request{Type: seo.KindStartup, Title: "Acme"}
	reqB := seo.Request{Type: seo.KindStory, Title: "Acme"}

	sc.Set(ctx, reqA.CacheKey(), &seo.Suggestions{MetaTitle: "startup title"})

	// A different request type must not hit the same entry.
	if _, ok := sc.Get(ctx, reqB.CacheKey()); ok {
		t.Error("different request kinds must not share cache entries")
	}
}

func TestSuggestionCacheInvalidateAll(t *testing.T) {
	client := testValkeyClient(t)
	sc := NewSuggestionCache(client, 1*time.Minute)

	ctx := context.Background()
	keys := []string{
		(&seo.Request{Type: seo.KindStartup, Title: "A"}).CacheKey(),
		(&seo.Request{Type: seo.KindStartup, Title: "B"}).CacheKey(),
		(&seo.Request{Type: seo.KindStory, Title: "C"}).CacheKey(),
	}
	for _, k := range keys {
		sc.Set(ctx, k, &seo.Suggestions{MetaTitle: "t"})
	}

	sc.InvalidateAll(ctx)

	for _, k := range keys {
		if _, ok := sc.Get(ctx, k); ok {
			t.Errorf("expected miss for %q after InvalidateAll", k)
		}
	}
}

func TestNewSuggestionCacheDefaultTTL(t *testing.T) {
	client := testValkeyClient(t)

	// TTL = 0 should use default.
	sc := NewSuggestionCache(client, 0)
	if sc.ttl != DefaultSuggestionTTL {
		t.Errorf("expected DefaultSuggestionTTL (%v), got %v", DefaultSuggestionTTL, sc.ttl)
	}
}
