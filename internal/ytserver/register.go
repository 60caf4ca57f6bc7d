// Package ytserver registers the YouTube MCP tools.
package ytserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 5

// RegisterTools registers youtube_search, youtube_video, youtube_playlist,
// youtube_lookup and youtube_extraction_failures on the given MCP server.
func RegisterTools(server *mcp.Server) {
	registerSearch(server)
	registerVideo(server)
	registerPlaylist(server)
	registerLookup(server)
	registerExtractionFailures(server)
}
