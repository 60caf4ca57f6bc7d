// go_ytsearch is a YouTube search, video and playlist MCP server.
//
// Reads the JSON blobs YouTube embeds in its pages (ytInitialData,
// ytInitialPlayerResponse) instead of calling the Data API, so no key is needed.
// Exposes youtube_search, youtube_video, youtube_playlist, youtube_lookup and
// youtube_extraction_failures over HTTP MCP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_ytsearch/internal/engine"
	"github.com/anatolykoptev/go_ytsearch/internal/ytserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	initEngine()

	slog.Info("starting go_ytsearch",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_ytsearch",
		Version: version,
	}, nil)

	ytserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", ytserver.ToolCount))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_ytsearch",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		HL:                   env.Str("YT_HL", engine.DefaultHL),
		GL:                   env.Str("YT_GL", engine.DefaultGL),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", engine.DefaultFetchTimeout),
		FetchRPS:             env.Float("FETCH_RPS", 2),
		FetchBurst:           env.Int("FETCH_BURST", 4),
		FetchMaxBytes:        int64(env.Int("FETCH_MAX_BYTES", engine.DefaultFetchMaxBytes)),
		MaxDescriptionChars:  env.Int("MAX_DESCRIPTION_CHARS", 5000),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		DumpDSN:              env.Str("DUMP_DSN", ""),
		DumpMaxBytes:         env.Int("DUMP_MAX_BYTES", engine.DefaultDumpMaxBytes),
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return errors.New("stopped after 5 redirects")
				}
				return nil
			},
		},
	}

	configFile := env.Str("CONFIG_FILE", "ytsearch.json5")
	fc, err := engine.ReadConfigFile(configFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Debug("no config file, using env only", slog.String("file", configFile))
	case err != nil:
		slog.Warn("config file ignored", slog.String("file", configFile), slog.Any("error", err))
	default:
		if err := fc.ApplyTo(&c); err != nil {
			slog.Warn("config file ignored", slog.String("file", configFile), slog.Any("error", err))
		} else {
			slog.Info("config file loaded", slog.String("file", configFile))
		}
	}

	engine.Init(c)

	// Failure dumps (SQLite file or Postgres)
	if c.DumpDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		store, err := engine.OpenDumpStore(ctx, c.DumpDSN)
		cancel()
		if err != nil {
			slog.Warn("dump store init failed", slog.Any("error", err))
		} else {
			engine.SetDumpStore(store)
			slog.Info("dump store initialized")
		}
	}

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}
