package engine

// --- Tool inputs ---

type YouTubeSearchInput struct {
	Query string `json:"query" jsonschema:"Search query"`
	HL    string `json:"hl,omitempty" jsonschema:"Interface language (default: en)"`
	GL    string `json:"gl,omitempty" jsonschema:"Region code (default: US)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max items per bucket (videos, live, channels, playlists). 0 = all"`
}

type YouTubeVideoInput struct {
	VideoID string `json:"video_id" jsonschema:"11-character video id or any watch/youtu.be URL"`
	HL      string `json:"hl,omitempty" jsonschema:"Interface language (default: en)"`
	GL      string `json:"gl,omitempty" jsonschema:"Region code (default: US)"`
}

type YouTubePlaylistInput struct {
	ListID string `json:"list_id" jsonschema:"Playlist id or any URL carrying list="`
	HL     string `json:"hl,omitempty" jsonschema:"Interface language (default: en)"`
	GL     string `json:"gl,omitempty" jsonschema:"Region code (default: US)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Max playlist items returned. 0 = all"`
}

type YouTubeLookupInput struct {
	VideoID string `json:"video_id,omitempty" jsonschema:"Video id; takes precedence over list_id and query"`
	ListID  string `json:"list_id,omitempty" jsonschema:"Playlist id; takes precedence over query"`
	Query   string `json:"query,omitempty" jsonschema:"Search query"`
	HL      string `json:"hl,omitempty" jsonschema:"Interface language (default: en)"`
	GL      string `json:"gl,omitempty" jsonschema:"Region code (default: US)"`
}

type ExtractionFailuresInput struct {
	Kind  string `json:"kind,omitempty" jsonschema:"Filter by page kind: search, video, playlist"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max dumps listed (default: 20)"`
}

type ExtractionFailuresOutput struct {
	Total int        `json:"total"`
	Dumps []DumpInfo `json:"dumps"`
}

// DumpInfo is a Dump as listed by the failures tool, without its body.
type DumpInfo struct {
	ID        int64  `json:"id"`
	Kind      string `json:"kind"`
	URL       string `json:"url"`
	Reason    string `json:"reason"`
	Verdict   string `json:"verdict,omitempty"`
	Bytes     int    `json:"bytes"`
	CreatedAt string `json:"created_at"`
}
