package ytserver

import (
	"context"

	"github.com/anatolykoptev/go_ytsearch/internal/engine"
	"github.com/anatolykoptev/go_ytsearch/internal/engine/sources"
	"github.com/anatolykoptev/go_ytsearch/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerPlaylist(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_playlist",
		Description: "List the videos of a YouTube playlist (first page as served, usually up to 100) with the playlist title and owner. Accepts a playlist id or any URL carrying list=.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.YouTubePlaylistInput) (*mcp.CallToolResult, sources.PlaylistResponse, error) {
		id := sources.NormalizeListID(input.ListID)
		if id == "" {
			return nil, sources.PlaylistResponse{}, sources.ErrEmptyListID
		}
		opts := toolutil.Options(input.HL, input.GL)

		cacheKey := engine.CacheKey("youtube_playlist", id, opts.HL, opts.GL)
		if out, ok := toolutil.CacheLoadJSON[sources.PlaylistResponse](ctx, cacheKey); ok {
			return nil, out.Limit(input.Limit), nil
		}

		out, err := sources.GetPlaylist(ctx, id, opts)
		if err != nil {
			return nil, sources.PlaylistResponse{}, err
		}
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out.Limit(input.Limit), nil
	})
}
