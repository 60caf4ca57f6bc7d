package ytserver

import (
	"context"

	"github.com/anatolykoptev/go_ytsearch/internal/engine"
	"github.com/anatolykoptev/go_ytsearch/internal/engine/sources"
	"github.com/anatolykoptev/go_ytsearch/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerLookup(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_lookup",
		Description: "One entry point for YouTube: pass video_id for video details, list_id for playlist contents, or query for search. video_id wins over list_id, list_id over query. The result's kind field says which was run.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.YouTubeLookupInput) (*mcp.CallToolResult, sources.LookupResult, error) {
		opts := toolutil.Options(input.HL, input.GL)
		req := sources.LookupRequest{
			VideoID: input.VideoID,
			ListID:  input.ListID,
			Query:   input.Query,
			Options: opts,
		}

		cacheKey := engine.CacheKey("youtube_lookup",
			sources.NormalizeVideoID(input.VideoID),
			sources.NormalizeListID(input.ListID),
			sources.CleanText(input.Query),
			opts.HL, opts.GL)
		if out, ok := toolutil.CacheLoadJSON[sources.LookupResult](ctx, cacheKey); ok {
			return nil, out, nil
		}

		type reply struct {
			res sources.LookupResult
			err error
		}
		done := make(chan reply, 1)
		sources.LookupAsync(ctx, req, func(res sources.LookupResult, err error) {
			done <- reply{res, err}
		})

		var r reply
		select {
		case r = <-done:
		case <-ctx.Done():
			return nil, sources.LookupResult{}, ctx.Err()
		}
		if r.err != nil {
			return nil, sources.LookupResult{}, r.err
		}
		if r.res.Video != nil {
			v := trimDescription(*r.res.Video)
			r.res.Video = &v
		}
		toolutil.CacheStoreJSON(ctx, cacheKey, r.res)
		return nil, r.res, nil
	})
}
