package sources

import (
	"context"
	"strings"

	"github.com/anatolykoptev/go_ytsearch/internal/engine"
	"github.com/samber/lo"
)

// PlaylistItem is one entry of a playlist page. The page carries no view or
// publish data for items.
type PlaylistItem struct {
	VideoID   string  `json:"videoId"`
	URL       string  `json:"url"`
	Title     string  `json:"title,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
	Seconds   *int    `json:"seconds"`
	Author    *Author `json:"author"`
	Thumbnail string  `json:"thumbnail,omitempty"`
}

// PlaylistResponse is a playlist header plus its visible items.
type PlaylistResponse struct {
	Type   string         `json:"type"`
	ListID string         `json:"listId"`
	URL    string         `json:"url"`
	Title  string         `json:"title,omitempty"`
	Author *Author        `json:"author"`
	Videos []PlaylistItem `json:"videos"`
}

// BuildPlaylistItem reads a playlistVideoRenderer body. ok is false without a videoId.
func BuildPlaylistItem(vr *Node) (PlaylistItem, bool) {
	id := strings.TrimSpace(vr.Get("videoId").Str())
	if id == "" {
		return PlaylistItem{}, false
	}
	it := PlaylistItem{
		VideoID:   id,
		URL:       ytWatchURL + id,
		Title:     ResolveText(vr.Get("title")),
		Timestamp: ResolveText(vr.Get("lengthText")),
		Thumbnail: PickBestThumbnail(vr.Get("thumbnail", "thumbnails")),
	}
	it.Seconds = ParseDurationSeconds(it.Timestamp)
	if name := ResolveText(vr.Get("shortBylineText")); name != "" {
		it.Author = &Author{Name: name}
	}
	return it, true
}

// AggregatePlaylistContents collects playlist items and the playlist's own
// title and owner. Only the first header node counts.
func AggregatePlaylistContents(tree *Node) PlaylistResponse {
	out := PlaylistResponse{Type: "playlist", Videos: []PlaylistItem{}}
	headerSeen := false
	Walk(tree, func(n *Node) {
		if vr := n.Get("playlistVideoRenderer"); vr.IsMapping() {
			if it, ok := BuildPlaylistItem(vr); ok {
				out.Videos = append(out.Videos, it)
			}
		}
		if h := n.Get("playlistHeaderRenderer"); h.IsMapping() && !headerSeen {
			headerSeen = true
			out.Title = ResolveText(h.Get("title"))
			out.Author = headerAuthor(h)
		}
	})
	if out.Title == "" {
		out.Title = ResolveText(tree.Get("metadata", "playlistMetadataRenderer", "title"))
	}
	return out
}

func headerAuthor(h *Node) *Author {
	owner := h.Get("ownerText")
	name := ResolveText(owner)
	if name == "" {
		return nil
	}
	id := h.Get("ownerEndpoint", "browseEndpoint", "browseId").Str()
	if id == "" {
		id = owner.Get("runs").Index(0).Get("navigationEndpoint", "browseEndpoint", "browseId").Str()
	}
	a := &Author{Name: name, ChannelID: id}
	if id != "" {
		a.URL = ytChannelURL + id
	}
	return a
}

// Limit keeps the first n items; n <= 0 keeps everything.
func (r PlaylistResponse) Limit(n int) PlaylistResponse {
	if n > 0 {
		r.Videos = lo.Slice(r.Videos, 0, n)
	}
	return r
}

// GetPlaylist fetches a playlist page and aggregates it.
func GetPlaylist(ctx context.Context, listID string, opts Options) (PlaylistResponse, error) {
	engine.IncrPlaylistRequests()
	id := NormalizeListID(listID)
	if id == "" {
		return PlaylistResponse{}, ErrEmptyListID
	}
	opts = opts.resolve()

	tree, err := fetchPayload(ctx, "playlist", opts.pageURL("/playlist", "list", id),
		withExtra(engine.Cfg.InitialDataMarkers, InitialDataMarkers), opts)
	if err != nil {
		return PlaylistResponse{}, err
	}
	out := AggregatePlaylistContents(tree)
	out.ListID = id
	out.URL = ytPlaylistURL + id
	return out, nil
}
