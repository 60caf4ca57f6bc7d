package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	SearchRequests   atomic.Int64
	VideoRequests    atomic.Int64
	PlaylistRequests atomic.Int64
	FetchRequests    atomic.Int64
	FetchErrors      atomic.Int64
	FetchRetries     atomic.Int64
	ExtractFailures  atomic.Int64
	RepairedPayloads atomic.Int64
	DumpsSaved       atomic.Int64
	ConsentWallsSeen atomic.Int64
}

var metricKeys = []string{
	"search_requests", "video_requests", "playlist_requests",
	"fetch_requests", "fetch_errors", "fetch_retries",
	"extract_failures", "repaired_payloads",
	"dumps_saved", "consent_walls_seen",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"search_requests":    metrics.SearchRequests.Load(),
		"video_requests":     metrics.VideoRequests.Load(),
		"playlist_requests":  metrics.PlaylistRequests.Load(),
		"fetch_requests":     metrics.FetchRequests.Load(),
		"fetch_errors":       metrics.FetchErrors.Load(),
		"fetch_retries":      metrics.FetchRetries.Load(),
		"extract_failures":   metrics.ExtractFailures.Load(),
		"repaired_payloads":  metrics.RepairedPayloads.Load(),
		"dumps_saved":        metrics.DumpsSaved.Load(),
		"consent_walls_seen": metrics.ConsentWallsSeen.Load(),
		"cache_hits":         hits,
		"cache_misses":       misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the sources sub-package.
func IncrSearchRequests()   { metrics.SearchRequests.Add(1) }
func IncrVideoRequests()    { metrics.VideoRequests.Add(1) }
func IncrPlaylistRequests() { metrics.PlaylistRequests.Add(1) }
func IncrExtractFailures()  { metrics.ExtractFailures.Add(1) }
func IncrRepairedPayloads() { metrics.RepairedPayloads.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
