package engine

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page verdicts, from most to least actionable.
const (
	VerdictConsentWall = "consent-wall"
	VerdictBotCheck    = "bot-check"
	VerdictEmpty       = "empty"
	VerdictNotHTML     = "not-html"
	VerdictShape       = "layout-changed"
)

// PageDiagnosis describes a fetched page that did not yield a payload.
type PageDiagnosis struct {
	Title        string `json:"title,omitempty"`
	ConsentWall  bool   `json:"consentWall"`
	BotCheck     bool   `json:"botCheck"`
	ScriptBlocks int    `json:"scriptBlocks"`
	Bytes        int    `json:"bytes"`
	Verdict      string `json:"verdict"`
}

var botCheckPhrases = []string{
	"unusual traffic",
	"not a robot",
	"our systems have detected",
}

// DiagnosePage guesses why a page carried no payload: a consent
// interstitial, a bot check, an empty body, or a layout we no longer read.
func DiagnosePage(doc string) *PageDiagnosis {
	d := &PageDiagnosis{Bytes: len(doc)}
	if strings.TrimSpace(doc) == "" {
		d.Verdict = VerdictEmpty
		return d
	}

	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		d.Verdict = VerdictNotHTML
		return d
	}
	page := goquery.NewDocumentFromNode(root)

	d.Title = strings.TrimSpace(page.Find("title").First().Text())
	d.ScriptBlocks = page.Find("script").Length()

	page.Find("form").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		action, _ := s.Attr("action")
		if strings.Contains(action, "consent.youtube.com") || strings.Contains(action, "consent.google.com") {
			d.ConsentWall = true
			return false
		}
		return true
	})
	if !d.ConsentWall && strings.Contains(strings.ToLower(d.Title), "before you continue") {
		d.ConsentWall = true
	}

	text := strings.ToLower(page.Find("body").Text())
	for _, p := range botCheckPhrases {
		if strings.Contains(text, p) {
			d.BotCheck = true
			break
		}
	}
	if page.Find("#captcha-form, form[action*='sorry']").Length() > 0 {
		d.BotCheck = true
	}

	switch {
	case d.ConsentWall:
		d.Verdict = VerdictConsentWall
		metrics.ConsentWallsSeen.Add(1)
	case d.BotCheck:
		d.Verdict = VerdictBotCheck
	default:
		d.Verdict = VerdictShape
	}
	return d
}
