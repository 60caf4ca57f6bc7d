package sources

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_ytsearch/internal/engine"
	"github.com/samber/lo"
)

// SearchResponse buckets everything a results page offered.
type SearchResponse struct {
	Query     string           `json:"query"`
	Videos    []VideoRecord    `json:"videos"`
	Live      []VideoRecord    `json:"live"`
	Channels  []ChannelRecord  `json:"channels"`
	Playlists []PlaylistRecord `json:"playlists"`
}

// Limit caps every bucket at n items; n <= 0 keeps everything.
func (r SearchResponse) Limit(n int) SearchResponse {
	if n <= 0 {
		return r
	}
	r.Videos = lo.Slice(r.Videos, 0, n)
	r.Live = lo.Slice(r.Live, 0, n)
	r.Channels = lo.Slice(r.Channels, 0, n)
	r.Playlists = lo.Slice(r.Playlists, 0, n)
	return r
}

// AggregateSearchResults walks a search page's ytInitialData once and sorts
// every renderer it recognises into videos, live, channels or playlists.
// Renderers without their id are dropped.
func AggregateSearchResults(tree *Node, query string) SearchResponse {
	out := SearchResponse{
		Query:     query,
		Videos:    []VideoRecord{},
		Live:      []VideoRecord{},
		Channels:  []ChannelRecord{},
		Playlists: []PlaylistRecord{},
	}
	Walk(tree, func(n *Node) {
		if vr := n.Get("videoRenderer"); vr.IsMapping() {
			if v, ok := BuildVideoRecord(vr); ok {
				if v.Live {
					out.Live = append(out.Live, v)
				} else {
					out.Videos = append(out.Videos, v)
				}
			}
		}
		if cr := n.Get("channelRenderer"); cr.IsMapping() {
			if c, ok := BuildChannelRecord(cr); ok {
				out.Channels = append(out.Channels, c)
			}
		}
		if pr := n.Get("playlistRenderer"); pr.IsMapping() {
			if p, ok := BuildPlaylistRecord(pr); ok {
				out.Playlists = append(out.Playlists, p)
			}
		} else if lv := n.Get("lockupViewModel"); lv.IsMapping() {
			if p, ok := BuildLockupPlaylistRecord(lv); ok {
				out.Playlists = append(out.Playlists, p)
			}
		}
	})
	return out
}

// Search fetches the results page for query and aggregates it.
func Search(ctx context.Context, query string, opts Options) (SearchResponse, error) {
	engine.IncrSearchRequests()
	q := CleanText(query)
	if q == "" {
		return SearchResponse{}, ErrEmptyQuery
	}
	opts = opts.resolve()

	var out SearchResponse
	err := engine.TrackOperation(ctx, "youtube_search", func(ctx context.Context) error {
		tree, err := fetchPayload(ctx, "search", opts.pageURL("/results", "search_query", q),
			withExtra(engine.Cfg.InitialDataMarkers, InitialDataMarkers), opts)
		if err != nil {
			return err
		}
		out = AggregateSearchResults(tree, q)
		return nil
	})
	if err != nil {
		return SearchResponse{}, err
	}
	slog.Debug("youtube: search done",
		slog.String("query", q),
		slog.Int("videos", len(out.Videos)),
		slog.Int("live", len(out.Live)),
		slog.Int("channels", len(out.Channels)),
		slog.Int("playlists", len(out.Playlists)),
	)
	return out, nil
}
