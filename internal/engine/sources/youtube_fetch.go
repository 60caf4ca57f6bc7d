package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/anatolykoptev/go_ytsearch/internal/engine"
)

// Options tune one page fetch. Zero fields fall back to engine.Cfg.
type Options struct {
	HL      string
	GL      string
	Timeout time.Duration
}

func (o Options) resolve() Options {
	o.HL = CleanText(o.HL)
	o.GL = CleanText(o.GL)
	if o.HL == "" {
		o.HL = engine.Cfg.HL
	}
	if o.GL == "" {
		o.GL = engine.Cfg.GL
	}
	if o.HL == "" {
		o.HL = engine.DefaultHL
	}
	if o.GL == "" {
		o.GL = engine.DefaultGL
	}
	if o.Timeout <= 0 {
		o.Timeout = engine.Cfg.FetchTimeout
	}
	if o.Timeout <= 0 {
		o.Timeout = engine.DefaultFetchTimeout
	}
	return o
}

// pageURL builds https://www.youtube.com{path}?{key}={value}&hl=..&gl=..
func (o Options) pageURL(path, key, value string) string {
	q := url.Values{}
	q.Set(key, value)
	q.Set("hl", o.HL)
	q.Set("gl", o.GL)
	return ytBaseURL + path + "?" + q.Encode()
}

// fetchDocument is the HTTP collaborator; tests swap it for a fake.
var fetchDocument = engine.FetchDocument

// Validation errors for empty identifiers.
var (
	ErrEmptyQuery   = errors.New("query is required")
	ErrEmptyVideoID = errors.New("videoId is required")
	ErrEmptyListID  = errors.New("listId is required")
)

// fetchPayload fetches pageURL and extracts the object behind markers. On
// failure the page is diagnosed and, when a dump store is configured, kept.
func fetchPayload(ctx context.Context, kind, pageURL string, markers []string, opts Options) (*Node, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	doc, err := fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("youtube %s page: %w", kind, err)
	}

	tree, err := ExtractNamedJSON(doc, markers)
	if err == nil {
		return tree, nil
	}

	engine.IncrExtractFailures()
	var nf *NotFoundError
	if errors.As(err, &nf) {
		nf.What = kind
		nf.Page = engine.DiagnosePage(doc)
	}
	slog.Warn("youtube: payload not found",
		slog.String("kind", kind),
		slog.String("url", pageURL),
		slog.Any("error", err),
	)

	dumpCtx, dumpCancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer dumpCancel()
	var diag *engine.PageDiagnosis
	if nf != nil {
		diag = nf.Page
	}
	engine.SaveDump(dumpCtx, kind, pageURL, err.Error(), diag, doc)
	return nil, err
}

// withExtra puts configured markers ahead of the built-in list.
func withExtra(extra, builtin []string) []string {
	if len(extra) == 0 {
		return builtin
	}
	out := make([]string, 0, len(extra)+len(builtin))
	out = append(out, extra...)
	return append(out, builtin...)
}

var videoIDRE = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|shorts/|live/|embed/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// NormalizeVideoID pulls the 11-char id out of any YouTube URL; other input
// is returned cleaned.
func NormalizeVideoID(s string) string {
	s = CleanText(s)
	if m := videoIDRE.FindStringSubmatch(s); len(m) >= 2 {
		return m[1]
	}
	return s
}

// NormalizeListID pulls list= out of a URL; other input is returned cleaned.
func NormalizeListID(s string) string {
	s = CleanText(s)
	if !strings.Contains(s, "list=") {
		return s
	}
	raw := s
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	if q, err := url.ParseQuery(raw); err == nil && q.Get("list") != "" {
		return q.Get("list")
	}
	return s
}
