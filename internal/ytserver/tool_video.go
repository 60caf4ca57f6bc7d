package ytserver

import (
	"context"

	"github.com/anatolykoptev/go-kit/strutil"
	"github.com/anatolykoptev/go_ytsearch/internal/engine"
	"github.com/anatolykoptev/go_ytsearch/internal/engine/sources"
	"github.com/anatolykoptev/go_ytsearch/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerVideo(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_video",
		Description: "Get details for one YouTube video: title, description, duration, view count, author, publish/upload dates, keywords and thumbnail. Accepts a video id or any watch, youtu.be, shorts or embed URL.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.YouTubeVideoInput) (*mcp.CallToolResult, sources.VideoDetailResponse, error) {
		id := sources.NormalizeVideoID(input.VideoID)
		if id == "" {
			return nil, sources.VideoDetailResponse{}, sources.ErrEmptyVideoID
		}
		opts := toolutil.Options(input.HL, input.GL)

		cacheKey := engine.CacheKey("youtube_video", id, opts.HL, opts.GL)
		if out, ok := toolutil.CacheLoadJSON[sources.VideoDetailResponse](ctx, cacheKey); ok {
			return nil, out, nil
		}

		out, err := sources.GetVideo(ctx, id, opts)
		if err != nil {
			return nil, sources.VideoDetailResponse{}, err
		}
		out = trimDescription(out)
		toolutil.CacheStoreJSON(ctx, cacheKey, out)
		return nil, out, nil
	})
}

// trimDescription caps the description at MaxDescriptionChars runes; 0 keeps it whole.
func trimDescription(v sources.VideoDetailResponse) sources.VideoDetailResponse {
	if limit := engine.Cfg.MaxDescriptionChars; limit > 0 {
		v.Description = strutil.TruncateWith(v.Description, limit, "...")
	}
	return v
}
