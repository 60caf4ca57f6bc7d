package sources

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	spaceRunRe    = regexp.MustCompile(`\s+`)
	absoluteURLRe = regexp.MustCompile(`(?i)^https?://`)
)

// CleanText collapses whitespace runs to one space and trims.
func CleanText(s string) string {
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(s, " "))
}

// ToInt keeps only the digits of s and parses them. Text without digits, or
// a digit run too large for int64, yields nil.
func ToInt(s string) *int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if digits == "" {
		return nil
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// NormalizeURL makes s absolute against https://www.youtube.com.
// Protocol-relative URLs get https:, root-relative ones get the YouTube
// origin, anything else is returned as is.
func NormalizeURL(s string) string {
	s = CleanText(s)
	switch {
	case s == "":
		return ""
	case absoluteURLRe.MatchString(s):
		return s
	case strings.HasPrefix(s, "//"):
		return "https:" + s
	case strings.HasPrefix(s, "/"):
		return ytBaseURL + s
	}
	return s
}

// ParseDurationSeconds reads "H:MM:SS", "M:SS" or plain "SS" as base-60
// digits left to right. Any part that is not a non-negative integer, or a
// total that does not fit in an int, makes the whole value nil.
func ParseDurationSeconds(ts string) *int {
	ts = CleanText(ts)
	if ts == "" {
		return nil
	}
	total := 0
	for _, part := range strings.Split(ts, ":") {
		part = strings.TrimSpace(part)
		if part == "" || strings.TrimLeft(part, "0123456789") != "" {
			return nil
		}
		n, err := strconv.Atoi(part)
		if err != nil || total > (math.MaxInt-n)/60 {
			return nil
		}
		total = total*60 + n
	}
	return &total
}

// FormatDuration renders H:MM:SS from one hour up, M:SS below.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h, m, s := seconds/3600, seconds%3600/60, seconds%60
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", seconds/60, s)
}

// PickBestThumbnail returns the normalized url of the last candidate.
// Candidates arrive smallest first, so position decides, not width.
func PickBestThumbnail(thumbs *Node) string {
	return NormalizeURL(thumbs.Index(-1).Get("url").Str())
}

// ResolveText reads a YouTube text object: joined runs when any run has
// text, otherwise simpleText, otherwise the view-model content field.
// A bare string node is taken as is.
func ResolveText(n *Node) string {
	if n.Kind() == KindText {
		return CleanText(n.Str())
	}
	if t := runsText(n.Get("runs")); t != "" {
		return t
	}
	if t := CleanText(n.Get("simpleText").Str()); t != "" {
		return t
	}
	return CleanText(n.Get("content").Str())
}

func runsText(runs *Node) string {
	var sb strings.Builder
	for _, r := range runs.Elems() {
		sb.WriteString(r.Get("text").Str())
	}
	return CleanText(sb.String())
}
