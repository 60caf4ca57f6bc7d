package ytserver

import (
	"context"
	"strings"
	"time"

	"github.com/anatolykoptev/go_ytsearch/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerExtractionFailures(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_extraction_failures",
		Description: "List recent YouTube pages that yielded no embedded data, newest first, with the failure reason and a verdict (consent-wall, bot-check, empty, layout-changed). Needs DUMP_DSN.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.ExtractionFailuresInput) (*mcp.CallToolResult, engine.ExtractionFailuresOutput, error) {
		dumps, err := engine.RecentDumps(ctx, strings.ToLower(strings.TrimSpace(input.Kind)), input.Limit)
		if err != nil {
			return nil, engine.ExtractionFailuresOutput{}, err
		}
		infos := make([]engine.DumpInfo, 0, len(dumps))
		for _, d := range dumps {
			infos = append(infos, engine.DumpInfo{
				ID:        d.ID,
				Kind:      d.Kind,
				URL:       d.URL,
				Reason:    d.Reason,
				Verdict:   d.Verdict,
				Bytes:     d.Bytes,
				CreatedAt: d.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		return nil, engine.ExtractionFailuresOutput{Total: len(infos), Dumps: infos}, nil
	})
}
