package sources

import (
	"context"
	"strconv"

	"github.com/anatolykoptev/go_ytsearch/internal/engine"
	"github.com/samber/lo"
)

// Duration pairs a seconds count with its H:MM:SS / M:SS rendering.
type Duration struct {
	Seconds   *int   `json:"seconds"`
	Timestamp string `json:"timestamp,omitempty"`
}

// VideoDetailResponse describes a single watch page.
type VideoDetailResponse struct {
	Type        string   `json:"type"`
	VideoID     string   `json:"videoId"`
	URL         string   `json:"url"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Duration    Duration `json:"duration"`
	Views       *int64   `json:"views"`
	Author      *Author  `json:"author"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	PublishDate string   `json:"publishDate,omitempty"`
	UploadDate  string   `json:"uploadDate,omitempty"`
	Category    string   `json:"category,omitempty"`
	Keywords    []string `json:"keywords"`
	LiveContent bool     `json:"isLiveContent"`
}

// BuildVideoDetails reads the player payload's flat videoDetails and
// playerMicroformatRenderer objects directly, without walking.
func BuildVideoDetails(details, micro *Node) VideoDetailResponse {
	out := VideoDetailResponse{
		Type:        "video",
		VideoID:     CleanText(details.Get("videoId").Str()),
		Title:       CleanText(details.Get("title").Str()),
		Description: CleanText(details.Get("shortDescription").Str()),
		Thumbnail:   PickBestThumbnail(details.Get("thumbnail", "thumbnails")),
		PublishDate: CleanText(micro.Get("publishDate").Str()),
		UploadDate:  CleanText(micro.Get("uploadDate").Str()),
		Category:    CleanText(micro.Get("category").Str()),
		LiveContent: details.Get("isLiveContent").Bool(),
	}
	if out.VideoID != "" {
		out.URL = ytWatchURL + out.VideoID
	}
	if out.Title == "" {
		out.Title = ResolveText(micro.Get("title"))
	}

	if secs, err := strconv.Atoi(CleanText(details.Get("lengthSeconds").Str())); err == nil && secs >= 0 {
		out.Duration = Duration{Seconds: &secs, Timestamp: FormatDuration(secs)}
	}
	if views, err := strconv.ParseInt(CleanText(details.Get("viewCount").Str()), 10, 64); err == nil && views >= 0 {
		out.Views = &views
	}

	if name := CleanText(details.Get("author").Str()); name != "" {
		a := &Author{Name: name, ChannelID: CleanText(details.Get("channelId").Str())}
		a.URL = NormalizeURL(micro.Get("ownerProfileUrl").Str())
		if a.URL == "" && a.ChannelID != "" {
			a.URL = ytChannelURL + a.ChannelID
		}
		out.Author = a
	}

	out.Keywords = lo.FilterMap(details.Get("keywords").Elems(), func(k *Node, _ int) (string, bool) {
		s := CleanText(k.Str())
		return s, k.Kind() == KindText && s != ""
	})
	return out
}

// GetVideo fetches a watch page and reads its ytInitialPlayerResponse.
func GetVideo(ctx context.Context, videoID string, opts Options) (VideoDetailResponse, error) {
	engine.IncrVideoRequests()
	id := NormalizeVideoID(videoID)
	if id == "" {
		return VideoDetailResponse{}, ErrEmptyVideoID
	}
	opts = opts.resolve()

	player, err := fetchPayload(ctx, "video", opts.pageURL("/watch", "v", id),
		withExtra(engine.Cfg.PlayerMarkers, PlayerResponseMarkers), opts)
	if err != nil {
		return VideoDetailResponse{}, err
	}
	out := BuildVideoDetails(player.Get("videoDetails"), player.Get("microformat", "playerMicroformatRenderer"))
	out.VideoID = id
	out.URL = ytWatchURL + id
	return out, nil
}
