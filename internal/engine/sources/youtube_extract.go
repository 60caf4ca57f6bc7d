package sources

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_ytsearch/internal/engine"
)

// Assignment spellings seen across page variants, most specific first.
var (
	InitialDataMarkers = []string{
		`var ytInitialData =`,
		`window["ytInitialData"] =`,
		`ytInitialData =`,
	}
	PlayerResponseMarkers = []string{
		`var ytInitialPlayerResponse =`,
		`window["ytInitialPlayerResponse"] =`,
		`ytInitialPlayerResponse =`,
	}
)

// ErrNotFound reports that no marker led to a decodable object.
var ErrNotFound = errors.New("embedded json not found")

// NotFoundError says which payload was sought and why each try failed.
// Page is filled by fetching callers so a consent or bot wall can be told
// apart from a changed page layout.
type NotFoundError struct {
	What    string
	Markers []string
	Reason  string
	Page    *engine.PageDiagnosis
}

func (e *NotFoundError) Error() string {
	var sb strings.Builder
	if e.What != "" {
		sb.WriteString(e.What)
		sb.WriteString(": ")
	}
	sb.WriteString(ErrNotFound.Error())
	if e.Reason != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Reason)
		sb.WriteString(")")
	}
	if e.Page != nil && e.Page.Verdict != "" {
		sb.WriteString("; page looks ")
		sb.WriteString(e.Page.Verdict)
	}
	return sb.String()
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ExtractNamedJSON locates the first marker present in doc whose following
// object decodes, trying a hex-escape repair once when strict decoding fails.
func ExtractNamedJSON(doc string, markers []string) (*Node, error) {
	var reasons []string
	for _, marker := range markers {
		idx := strings.Index(doc, marker)
		if idx < 0 {
			continue
		}
		raw, _, ok := ScanObject(doc, idx+len(marker))
		if !ok {
			reasons = append(reasons, fmt.Sprintf("%q: unbalanced object", marker))
			continue
		}
		tree, err := DecodeTree([]byte(raw))
		if err == nil {
			slog.Debug("youtube: payload extracted", slog.String("marker", marker), slog.Int("bytes", len(raw)))
			return tree, nil
		}
		if repaired := repairHexEscapes(raw); repaired != raw {
			if tree, rerr := DecodeTree([]byte(repaired)); rerr == nil {
				engine.IncrRepairedPayloads()
				slog.Debug("youtube: payload extracted after repair", slog.String("marker", marker))
				return tree, nil
			}
		}
		reasons = append(reasons, fmt.Sprintf("%q: %v", marker, err))
	}
	reason := "no markers given"
	if len(markers) > 0 {
		reason = fmt.Sprintf("none of %d markers present, first %q", len(markers), markers[0])
	}
	if len(reasons) > 0 {
		reason = strings.Join(reasons, "; ")
	}
	return nil, &NotFoundError{Markers: markers, Reason: reason}
}

var hexEscapeRe = regexp.MustCompile(`\\(\\|x[0-9a-fA-F]{2})`)

// repairHexEscapes rewrites \xHH into the character it names. An escaped
// backslash is left alone so "\\x41" stays literal text. Characters JSON
// cannot carry raw inside a string become \u00HH.
func repairHexEscapes(s string) string {
	if !strings.Contains(s, `\x`) {
		return s
	}
	return hexEscapeRe.ReplaceAllStringFunc(s, func(m string) string {
		if m == `\\` {
			return m
		}
		v, err := strconv.ParseUint(m[2:], 16, 8)
		if err != nil {
			return m
		}
		if v < 0x20 || v == '"' || v == '\\' || v == 0x7f {
			return fmt.Sprintf(`\u%04x`, v)
		}
		return string(rune(v))
	})
}
