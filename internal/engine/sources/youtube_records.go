package sources

import (
	"strings"

	"github.com/samber/lo"
)

// Author is the channel behind a video or playlist. Records carry nil
// instead of an Author with an empty name.
type Author struct {
	Name      string `json:"name"`
	ChannelID string `json:"channelId,omitempty"`
	URL       string `json:"url,omitempty"`
}

// VideoRecord is one video as it appears in search results.
type VideoRecord struct {
	Type      string  `json:"type"`
	VideoID   string  `json:"videoId"`
	URL       string  `json:"url"`
	Title     string  `json:"title,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
	Seconds   *int    `json:"seconds"`
	Views     *int64  `json:"views"`
	ViewsText string  `json:"viewsText,omitempty"`
	Ago       string  `json:"ago,omitempty"`
	Author    *Author `json:"author"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	Live      bool    `json:"isLive"`
}

// ChannelRecord is one channel as it appears in search results.
type ChannelRecord struct {
	Type            string `json:"type"`
	ChannelID       string `json:"channelId"`
	URL             string `json:"url"`
	Name            string `json:"name,omitempty"`
	Description     string `json:"description,omitempty"`
	SubscribersText string `json:"subscribersText,omitempty"`
	Thumbnail       string `json:"thumbnail,omitempty"`
}

// PlaylistRecord is one playlist as it appears in search results.
type PlaylistRecord struct {
	Type           string  `json:"type"`
	ListID         string  `json:"listId"`
	URL            string  `json:"url"`
	Title          string  `json:"title,omitempty"`
	VideoCountText string  `json:"videoCountText,omitempty"`
	Author         *Author `json:"author"`
	Thumbnail      string  `json:"thumbnail,omitempty"`
}

const lockupPlaylist = "LOCKUP_CONTENT_TYPE_PLAYLIST"

// navURL is the web URL a renderer links to, if any.
func navURL(n *Node) string {
	return NormalizeURL(n.Get("navigationEndpoint", "commandMetadata", "webCommandMetadata", "url").Str())
}

// BuildVideoRecord reads a videoRenderer body. ok is false without a videoId.
func BuildVideoRecord(vr *Node) (VideoRecord, bool) {
	id := strings.TrimSpace(vr.Get("videoId").Str())
	if id == "" {
		return VideoRecord{}, false
	}
	rec := VideoRecord{
		Type:      "video",
		VideoID:   id,
		URL:       navURL(vr),
		Title:     ResolveText(vr.Get("title")),
		Timestamp: ResolveText(vr.Get("lengthText")),
		ViewsText: ResolveText(vr.Get("viewCountText")),
		Ago:       ResolveText(vr.Get("publishedTimeText")),
		Author:    videoAuthor(vr.Get("ownerText")),
		Thumbnail: PickBestThumbnail(vr.Get("thumbnail", "thumbnails")),
		Live:      isLive(vr),
	}
	if rec.URL == "" {
		rec.URL = ytWatchURL + id
	}
	rec.Seconds = ParseDurationSeconds(rec.Timestamp)
	if rec.ViewsText != "" {
		rec.Views = ToInt(rec.ViewsText)
	}
	return rec, true
}

// videoAuthor resolves the owner line. The channel id and URL come from the
// first run's browse link; without a URL one is built from the channel id.
func videoAuthor(owner *Node) *Author {
	name := ResolveText(owner)
	if name == "" {
		return nil
	}
	nav := owner.Get("runs").Index(0).Get("navigationEndpoint")
	a := &Author{
		Name:      name,
		ChannelID: nav.Get("browseEndpoint", "browseId").Str(),
		URL:       NormalizeURL(nav.Get("commandMetadata", "webCommandMetadata", "url").Str()),
	}
	if a.URL == "" {
		a.URL = NormalizeURL(nav.Get("browseEndpoint", "canonicalBaseUrl").Str())
	}
	if a.URL == "" && a.ChannelID != "" {
		a.URL = ytChannelURL + a.ChannelID
	}
	return a
}

// isLive is a heuristic: any badge label or overlay style mentioning "live".
// Premieres and reused badge text can fool it.
func isLive(vr *Node) bool {
	mentionsLive := func(s string) bool {
		return strings.Contains(strings.ToLower(s), "live")
	}
	return lo.ContainsBy(vr.Get("badges").Elems(), func(b *Node) bool {
		return mentionsLive(b.Get("metadataBadgeRenderer", "label").Str())
	}) || lo.ContainsBy(vr.Get("thumbnailOverlays").Elems(), func(o *Node) bool {
		return mentionsLive(o.Get("thumbnailOverlayTimeStatusRenderer", "style").Str())
	})
}

// BuildChannelRecord reads a channelRenderer body. ok is false without a channelId.
func BuildChannelRecord(cr *Node) (ChannelRecord, bool) {
	id := strings.TrimSpace(cr.Get("channelId").Str())
	if id == "" {
		return ChannelRecord{}, false
	}
	rec := ChannelRecord{
		Type:            "channel",
		ChannelID:       id,
		URL:             navURL(cr),
		Name:            ResolveText(cr.Get("title")),
		Description:     ResolveText(cr.Get("descriptionSnippet")),
		SubscribersText: ResolveText(cr.Get("subscriberCountText")),
		Thumbnail:       PickBestThumbnail(cr.Get("thumbnail", "thumbnails")),
	}
	if rec.URL == "" {
		rec.URL = ytChannelURL + id
	}
	return rec, true
}

// BuildPlaylistRecord reads a playlistRenderer body. ok is false without a playlistId.
func BuildPlaylistRecord(pr *Node) (PlaylistRecord, bool) {
	id := strings.TrimSpace(pr.Get("playlistId").Str())
	if id == "" {
		return PlaylistRecord{}, false
	}
	thumbs := pr.Get("thumbnails").Index(0).Get("thumbnails")
	if thumbs.Len() == 0 {
		thumbs = pr.Get("thumbnail", "thumbnails")
	}
	rec := PlaylistRecord{
		Type:           "playlist",
		ListID:         id,
		URL:            navURL(pr),
		Title:          ResolveText(pr.Get("title")),
		VideoCountText: ResolveText(pr.Get("videoCountText")),
		Thumbnail:      PickBestThumbnail(thumbs),
	}
	if rec.URL == "" {
		rec.URL = ytPlaylistURL + id
	}
	name := ResolveText(pr.Get("shortBylineText"))
	if name == "" {
		name = ResolveText(pr.Get("longBylineText"))
	}
	if name != "" {
		rec.Author = &Author{Name: name}
	}
	return rec, true
}

// BuildLockupPlaylistRecord reads a lockupViewModel body, the newer search
// layout for playlists. ok is false for other content types or a missing contentId.
func BuildLockupPlaylistRecord(lv *Node) (PlaylistRecord, bool) {
	if lv.Get("contentType").Str() != lockupPlaylist {
		return PlaylistRecord{}, false
	}
	id := strings.TrimSpace(lv.Get("contentId").Str())
	if id == "" {
		return PlaylistRecord{}, false
	}
	meta := lv.Get("metadata", "lockupMetadataViewModel")
	image := lv.Get("contentImage", "collectionThumbnailViewModel", "primaryThumbnail", "thumbnailViewModel", "image")
	rec := PlaylistRecord{
		Type:      "playlist",
		ListID:    id,
		URL:       ytPlaylistURL + id,
		Title:     ResolveText(meta.Get("title")),
		Thumbnail: PickBestThumbnail(image.Get("sources")),
	}
	row := meta.Get("metadata", "contentMetadataViewModel", "metadataRows").Index(0)
	if name := ResolveText(row.Get("metadataParts").Index(0).Get("text")); name != "" {
		rec.Author = &Author{Name: name}
	}
	return rec, true
}
