package ytserver

import (
	"context"

	"github.com/anatolykoptev/go_ytsearch/internal/engine"
	"github.com/anatolykoptev/go_ytsearch/internal/engine/sources"
	"github.com/anatolykoptev/go_ytsearch/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerSearch(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_search",
		Description: "Search YouTube without an API key. Returns videos, live streams, channels and playlists from the results page, each with URL, title, thumbnail and (for videos) duration, views, age and author.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.YouTubeSearchInput) (*mcp.CallToolResult, sources.SearchResponse, error) {
		query := sources.CleanText(input.Query)
		if query == "" {
			return nil, sources.SearchResponse{}, sources.ErrEmptyQuery
		}
		opts := toolutil.Options(input.HL, input.GL)

		cacheKey := engine.CacheKey("youtube_search", query, opts.HL, opts.GL)
		if out, ok := toolutil.CacheLoadJSON[sources.SearchResponse](ctx, cacheKey); ok {
			return nil, out.Limit(input.Limit), nil
		}

		out, err := sources.Search(ctx, query, opts)
		if err != nil {
			return nil, sources.SearchResponse{}, err
		}
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out.Limit(input.Limit), nil
	})
}
