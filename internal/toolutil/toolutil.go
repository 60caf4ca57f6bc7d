// Package toolutil provides shared helper functions for go_ytsearch MCP tools.
package toolutil

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_ytsearch/internal/engine"
	"github.com/anatolykoptev/go_ytsearch/internal/engine/sources"
)

// CacheLoadJSON tries to load a cached value of type T from the engine cache.
// Returns the decoded value and true on hit; zero value and false on miss or decode error.
func CacheLoadJSON[T any](ctx context.Context, key string) (T, bool) {
	var out T
	data, ok := engine.CacheGet(ctx, key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		slog.Debug("toolutil: cached value undecodable", slog.String("key", key), slog.Any("error", err))
		var zero T
		return zero, false
	}
	return out, true
}

// CacheStoreJSON marshals v and stores it in the engine cache.
func CacheStoreJSON[T any](ctx context.Context, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	engine.CacheSet(ctx, key, data)
}

// Options maps tool hl/gl arguments onto fetch options. Region codes are
// upper-cased so "us" and "US" share a cache entry.
func Options(hl, gl string) sources.Options {
	return sources.Options{
		HL: strings.TrimSpace(hl),
		GL: strings.ToUpper(strings.TrimSpace(gl)),
	}
}
