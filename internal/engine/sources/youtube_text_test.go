package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  hello  ", "hello"},
		{"a \n\t b", "a b"},
		{"Hello\u00a0World", "Hello\u00a0World"},
	}
	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"1,234 views", 1234, true},
		{"1.234.567 Aufrufe", 1234567, true},
		{"42", 42, true},
		{"0 views", 0, true},
		{"No views", 0, false},
		{"", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tt := range tests {
		got := ToInt(tt.in)
		if !tt.ok {
			if got != nil {
				t.Errorf("ToInt(%q) = %d, want nil", tt.in, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("ToInt(%q) = %v, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"https://i.ytimg.com/vi/x/hq.jpg", "https://i.ytimg.com/vi/x/hq.jpg"},
		{"HTTP://Example.com/a", "HTTP://Example.com/a"},
		{"//i.ytimg.com/vi/x/hq.jpg", "https://i.ytimg.com/vi/x/hq.jpg"},
		{"/watch?v=abc", "https://www.youtube.com/watch?v=abc"},
		{"  /@chan ", "https://www.youtube.com/@chan"},
		{"watch?v=abc", "watch?v=abc"},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDurationSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"2:05", 125, true},
		{"1:02:05", 3725, true},
		{"45", 45, true},
		{"0:00", 0, true},
		{" 3:00 ", 180, true},
		{"", 0, false},
		{"LIVE", 0, false},
		{"1:xx", 0, false},
		{"1::2", 0, false},
		{"-1:00", 0, false},
		{"1:2.5", 0, false},
		{"999999999999999999:00:00", 0, false},
		{"153722867280912930:59", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tt := range tests {
		got := ParseDurationSeconds(tt.in)
		if !tt.ok {
			if got != nil {
				t.Errorf("ParseDurationSeconds(%q) = %d, want nil", tt.in, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("ParseDurationSeconds(%q) = %v, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0:00"},
		{-3, "0:00"},
		{59, "0:59"},
		{125, "2:05"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{90061, "25:01:01"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDurationRoundTrip(t *testing.T) {
	for s := 0; s < 40000; s += 37 {
		got := ParseDurationSeconds(FormatDuration(s))
		if got == nil || *got != s {
			t.Fatalf("ParseDurationSeconds(FormatDuration(%d)) = %v", s, got)
		}
	}
}

func TestPickBestThumbnail(t *testing.T) {
	thumbs := mustTree(t, `[
		{"url":"//i.ytimg.com/small.jpg","width":1280},
		{"url":"https://i.ytimg.com/last.jpg","width":120}
	]`)
	assert.Equal(t, "https://i.ytimg.com/last.jpg", PickBestThumbnail(thumbs))

	rel := mustTree(t, `[{"url":"//i.ytimg.com/only.jpg"}]`)
	assert.Equal(t, "https://i.ytimg.com/only.jpg", PickBestThumbnail(rel))

	assert.Equal(t, "", PickBestThumbnail(mustTree(t, `[]`)))
	assert.Equal(t, "", PickBestThumbnail(nil))
}

func TestResolveText(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"runs joined", `{"runs":[{"text":"Hello "},{"text":"World"}]}`, "Hello World"},
		{"runs win over simpleText", `{"runs":[{"text":"a"}],"simpleText":"b"}`, "a"},
		{"empty runs fall back", `{"runs":[{"text":"  "}],"simpleText":" b "}`, "b"},
		{"simpleText", `{"simpleText":"1,234 views"}`, "1,234 views"},
		{"view model content", `{"content":"Mix  playlist"}`, "Mix playlist"},
		{"bare string", `"  plain  "`, "plain"},
		{"nothing", `{"accessibility":{}}`, ""},
		{"number", `7`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveText(mustTree(t, tt.src)))
		})
	}
	assert.Equal(t, "", ResolveText(nil))
}
