package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildVideoRecord_Minimal(t *testing.T) {
	vr := mustTree(t, `{
		"videoId":"abc123",
		"title":{"runs":[{"text":"Hello "},{"text":"World"}]},
		"viewCountText":{"simpleText":"1,234 views"}
	}`)
	rec, ok := BuildVideoRecord(vr)
	require.True(t, ok)
	assert.Equal(t, "video", rec.Type)
	assert.Equal(t, "abc123", rec.VideoID)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", rec.URL)
	assert.Equal(t, "Hello World", rec.Title)
	require.NotNil(t, rec.Views)
	assert.Equal(t, int64(1234), *rec.Views)
	assert.Equal(t, "1,234 views", rec.ViewsText)
	assert.Nil(t, rec.Seconds)
	assert.Nil(t, rec.Author)
	assert.False(t, rec.Live)
}

func TestBuildVideoRecord_Full(t *testing.T) {
	vr := mustTree(t, `{
		"videoId":"dQw4w9WgXcQ",
		"navigationEndpoint":{"commandMetadata":{"webCommandMetadata":{"url":"/watch?v=dQw4w9WgXcQ&pp=x"}}},
		"title":{"runs":[{"text":"Never Gonna"}]},
		"lengthText":{"simpleText":"3:33"},
		"publishedTimeText":{"simpleText":"14 years ago"},
		"viewCountText":{"simpleText":"1,500,000,000 views"},
		"ownerText":{"runs":[{"text":"Rick Astley","navigationEndpoint":{
			"commandMetadata":{"webCommandMetadata":{"url":"/@RickAstleyYT"}},
			"browseEndpoint":{"browseId":"UCuAXFkgsw1L7xaCfnd5JJOw"}}}]},
		"thumbnail":{"thumbnails":[{"url":"https://i.ytimg.com/a.jpg"},{"url":"https://i.ytimg.com/b.jpg"}]}
	}`)
	rec, ok := BuildVideoRecord(vr)
	require.True(t, ok)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&pp=x", rec.URL)
	assert.Equal(t, "3:33", rec.Timestamp)
	require.NotNil(t, rec.Seconds)
	assert.Equal(t, 213, *rec.Seconds)
	assert.Equal(t, int64(1500000000), *rec.Views)
	assert.Equal(t, "14 years ago", rec.Ago)
	assert.Equal(t, "https://i.ytimg.com/b.jpg", rec.Thumbnail)
	assert.Equal(t, &Author{
		Name:      "Rick Astley",
		ChannelID: "UCuAXFkgsw1L7xaCfnd5JJOw",
		URL:       "https://www.youtube.com/@RickAstleyYT",
	}, rec.Author)
}

func TestBuildVideoRecord_OversizedLength(t *testing.T) {
	rec, ok := BuildVideoRecord(mustTree(t, `{"videoId":"x","lengthText":{"simpleText":"153722867280912930:59"}}`))
	require.True(t, ok)
	assert.Equal(t, "153722867280912930:59", rec.Timestamp)
	assert.Nil(t, rec.Seconds)
}

func TestBuildVideoRecord_NoViewsText(t *testing.T) {
	rec, ok := BuildVideoRecord(mustTree(t, `{"videoId":"x","viewCountText":{"simpleText":"No views"}}`))
	require.True(t, ok)
	assert.Nil(t, rec.Views)
	assert.Equal(t, "No views", rec.ViewsText)
}

func TestVideoAuthor_URLFallbacks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *Author
	}{
		{
			name: "canonical base url",
			src: `{"runs":[{"text":"Chan","navigationEndpoint":{"browseEndpoint":{
				"browseId":"UC1","canonicalBaseUrl":"/@chan"}}}]}`,
			want: &Author{Name: "Chan", ChannelID: "UC1", URL: "https://www.youtube.com/@chan"},
		},
		{
			name: "built from channel id",
			src:  `{"runs":[{"text":"Chan","navigationEndpoint":{"browseEndpoint":{"browseId":"UC1"}}}]}`,
			want: &Author{Name: "Chan", ChannelID: "UC1", URL: "https://www.youtube.com/channel/UC1"},
		},
		{
			name: "name only",
			src:  `{"simpleText":"Chan"}`,
			want: &Author{Name: "Chan"},
		},
		{
			name: "no name",
			src:  `{"runs":[{"text":" ","navigationEndpoint":{"browseEndpoint":{"browseId":"UC1"}}}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, videoAuthor(mustTree(t, tt.src)))
		})
	}
}

func TestBuildVideoRecord_Live(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"badge", `{"videoId":"x","badges":[{"metadataBadgeRenderer":{"label":"LIVE"}}]}`, true},
		{"badge mixed case", `{"videoId":"x","badges":[{"metadataBadgeRenderer":{"label":"Live now"}}]}`, true},
		{"overlay style", `{"videoId":"x","thumbnailOverlays":[{"thumbnailOverlayTimeStatusRenderer":{"style":"LIVE"}}]}`, true},
		{"other badge", `{"videoId":"x","badges":[{"metadataBadgeRenderer":{"label":"New"}}]}`, false},
		{"default overlay", `{"videoId":"x","thumbnailOverlays":[{"thumbnailOverlayTimeStatusRenderer":{"style":"DEFAULT"}}]}`, false},
		{"nothing", `{"videoId":"x"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := BuildVideoRecord(mustTree(t, tt.src))
			require.True(t, ok)
			assert.Equal(t, tt.want, rec.Live)
		})
	}
}

func TestBuilders_RequireIdentifier(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"videoId":"","channelId":"","playlistId":"","contentId":"","contentType":"LOCKUP_CONTENT_TYPE_PLAYLIST"}`,
		`{"videoId":"  ","channelId":"  ","playlistId":"  ","contentId":"  ","contentType":"LOCKUP_CONTENT_TYPE_PLAYLIST"}`,
		`{"videoId":null,"channelId":null,"playlistId":null,"contentId":null,"title":{"simpleText":"t"}}`,
	}
	for _, src := range bodies {
		n := mustTree(t, src)
		if _, ok := BuildVideoRecord(n); ok {
			t.Errorf("BuildVideoRecord(%s) ok, want false", src)
		}
		if _, ok := BuildChannelRecord(n); ok {
			t.Errorf("BuildChannelRecord(%s) ok, want false", src)
		}
		if _, ok := BuildPlaylistRecord(n); ok {
			t.Errorf("BuildPlaylistRecord(%s) ok, want false", src)
		}
		if _, ok := BuildLockupPlaylistRecord(n); ok {
			t.Errorf("BuildLockupPlaylistRecord(%s) ok, want false", src)
		}
		if _, ok := BuildPlaylistItem(n); ok {
			t.Errorf("BuildPlaylistItem(%s) ok, want false", src)
		}
	}
	if _, ok := BuildVideoRecord(nil); ok {
		t.Error("BuildVideoRecord(nil) ok, want false")
	}
}

func TestBuildChannelRecord(t *testing.T) {
	cr := mustTree(t, `{
		"channelId":"UC42",
		"title":{"simpleText":"Lofi Girl"},
		"descriptionSnippet":{"runs":[{"text":"beats "},{"text":"to relax"}]},
		"subscriberCountText":{"simpleText":"14M subscribers"},
		"thumbnail":{"thumbnails":[{"url":"//yt3.ggpht.com/s88"},{"url":"//yt3.ggpht.com/s176"}]}
	}`)
	rec, ok := BuildChannelRecord(cr)
	require.True(t, ok)
	assert.Equal(t, ChannelRecord{
		Type:            "channel",
		ChannelID:       "UC42",
		URL:             "https://www.youtube.com/channel/UC42",
		Name:            "Lofi Girl",
		Description:     "beats to relax",
		SubscribersText: "14M subscribers",
		Thumbnail:       "https://yt3.ggpht.com/s176",
	}, rec)

	withNav := mustTree(t, `{"channelId":"UC42","navigationEndpoint":{"commandMetadata":{"webCommandMetadata":{"url":"/@LofiGirl"}}}}`)
	rec, ok = BuildChannelRecord(withNav)
	require.True(t, ok)
	assert.Equal(t, "https://www.youtube.com/@LofiGirl", rec.URL)
}

func TestBuildPlaylistRecord(t *testing.T) {
	pr := mustTree(t, `{
		"playlistId":"PL1",
		"title":{"simpleText":"Mix"},
		"videoCountText":{"runs":[{"text":"25"},{"text":" videos"}]},
		"shortBylineText":{"runs":[{"text":"Someone"}]},
		"thumbnails":[{"thumbnails":[{"url":"https://i.ytimg.com/p1.jpg"},{"url":"https://i.ytimg.com/p2.jpg"}]}]
	}`)
	rec, ok := BuildPlaylistRecord(pr)
	require.True(t, ok)
	assert.Equal(t, PlaylistRecord{
		Type:           "playlist",
		ListID:         "PL1",
		URL:            "https://www.youtube.com/playlist?list=PL1",
		Title:          "Mix",
		VideoCountText: "25 videos",
		Author:         &Author{Name: "Someone"},
		Thumbnail:      "https://i.ytimg.com/p2.jpg",
	}, rec)
}

func TestBuildPlaylistRecord_Fallbacks(t *testing.T) {
	pr := mustTree(t, `{
		"playlistId":"PL2",
		"longBylineText":{"simpleText":"Long Name"},
		"thumbnail":{"thumbnails":[{"url":"/fallback.jpg"}]}
	}`)
	rec, ok := BuildPlaylistRecord(pr)
	require.True(t, ok)
	assert.Equal(t, &Author{Name: "Long Name"}, rec.Author)
	assert.Equal(t, "https://www.youtube.com/fallback.jpg", rec.Thumbnail)

	rec, ok = BuildPlaylistRecord(mustTree(t, `{"playlistId":"PL3"}`))
	require.True(t, ok)
	assert.Nil(t, rec.Author)
	assert.Empty(t, rec.Thumbnail)
}

const lockupFixture = `{
	"contentId":"PLlock",
	"contentType":"LOCKUP_CONTENT_TYPE_PLAYLIST",
	"contentImage":{"collectionThumbnailViewModel":{"primaryThumbnail":{"thumbnailViewModel":{"image":{
		"sources":[{"url":"https://i.ytimg.com/l1.jpg"},{"url":"https://i.ytimg.com/l2.jpg"}]}}}}},
	"metadata":{"lockupMetadataViewModel":{
		"title":{"content":"Chill Mix"},
		"metadata":{"contentMetadataViewModel":{"metadataRows":[
			{"metadataParts":[{"text":{"content":"Curator"}},{"text":{"content":"Playlist"}}]}
		]}}
	}}
}`

func TestBuildLockupPlaylistRecord(t *testing.T) {
	rec, ok := BuildLockupPlaylistRecord(mustTree(t, lockupFixture))
	require.True(t, ok)
	assert.Equal(t, PlaylistRecord{
		Type:      "playlist",
		ListID:    "PLlock",
		URL:       "https://www.youtube.com/playlist?list=PLlock",
		Title:     "Chill Mix",
		Author:    &Author{Name: "Curator"},
		Thumbnail: "https://i.ytimg.com/l2.jpg",
	}, rec)

	_, ok = BuildLockupPlaylistRecord(mustTree(t, `{"contentId":"v1","contentType":"LOCKUP_CONTENT_TYPE_VIDEO"}`))
	assert.False(t, ok)
}
