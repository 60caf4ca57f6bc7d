package sources

import (
	"context"
	"fmt"
)

// LookupRequest names one thing to fetch. VideoID wins over ListID, which
// wins over the query; Search and Q are accepted as query aliases.
type LookupRequest struct {
	VideoID string
	ListID  string
	Query   string
	Search  string
	Q       string
	Options
}

// LookupResult holds exactly one of the three responses; Kind says which.
type LookupResult struct {
	Kind     string               `json:"kind"`
	Search   *SearchResponse      `json:"search,omitempty"`
	Video    *VideoDetailResponse `json:"video,omitempty"`
	Playlist *PlaylistResponse    `json:"playlist,omitempty"`
}

func (r LookupRequest) query() string {
	for _, q := range []string{r.Query, r.Search, r.Q} {
		if q = CleanText(q); q != "" {
			return q
		}
	}
	return ""
}

// Lookup dispatches req to GetVideo, GetPlaylist or Search.
func Lookup(ctx context.Context, req LookupRequest) (LookupResult, error) {
	switch {
	case CleanText(req.VideoID) != "":
		v, err := GetVideo(ctx, req.VideoID, req.Options)
		if err != nil {
			return LookupResult{}, err
		}
		return LookupResult{Kind: "video", Video: &v}, nil
	case CleanText(req.ListID) != "":
		p, err := GetPlaylist(ctx, req.ListID, req.Options)
		if err != nil {
			return LookupResult{}, err
		}
		return LookupResult{Kind: "playlist", Playlist: &p}, nil
	}
	s, err := Search(ctx, req.query(), req.Options)
	if err != nil {
		return LookupResult{}, err
	}
	return LookupResult{Kind: "search", Search: &s}, nil
}

// LookupAsync runs Lookup on its own goroutine and calls cb exactly once
// with the result or the error. A panic inside the lookup is reported to cb
// as an error.
func LookupAsync(ctx context.Context, req LookupRequest, cb func(LookupResult, error)) {
	go func() {
		var (
			res LookupResult
			err error
		)
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("lookup panicked: %v", r)
				res = LookupResult{}
			}
			cb(res, err)
		}()
		res, err = Lookup(ctx, req)
	}()
}
