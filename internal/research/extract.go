package research

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	// MaxContentLength bounds the extracted text of a single source.
	MaxContentLength = 2000

	// fetchTimeout bounds a single page fetch.
	fetchTimeout = 10 * time.Second

	// userAgent identifies the client as a regular browser; several sites
	// serve empty shells to unknown agents.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// nonContentSelector matches tags that never carry article text.
const nonContentSelector = "script, style, nav, header, footer, aside, noscript, form, iframe"

// contentSelectors are tried in order to find the primary content container
// before falling back to the whole body.
var contentSelectors = []string{
	"main",
	"article",
	"[role='main']",
	"#content",
	".content",
	".post-content",
	".entry-content",
}

// Extractor fetches a single URL and reduces its HTML to cleaned body text.
// Extraction never fails: unreachable pages, malformed HTML, and timeouts
// all degrade to an empty result.
type Extractor struct {
	client *http.Client
	maxLen int
	log    *zap.Logger
}

// NewExtractor creates an Extractor with the default fetch timeout and
// content length bound. A nil logger is replaced with a no-op logger.
func NewExtractor(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{
		client: &http.Client{Timeout: fetchTimeout},
		maxLen: MaxContentLength,
		log:    log,
	}
}

// Extract returns the cleaned visible text of the page at url, truncated to
// the configured bound, or "" if the page is unreachable or has no
// extractable content.
func (e *Extractor) Extract(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		e.log.Warn("extract: build request", zap.String("url", url), zap.Error(err))
		return ""
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		e.log.Warn("extract: fetch failed", zap.String("url", url), zap.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e.log.Warn("extract: non-200 response",
			zap.String("url", url), zap.Int("status", resp.StatusCode))
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		e.log.Warn("extract: parse failed", zap.String("url", url), zap.Error(err))
		return ""
	}

	return e.clean(doc)
}

// clean strips non-content tags, prefers a primary-content container over
// the full body, and collapses whitespace.
func (e *Extractor) clean(doc *goquery.Document) string {
	doc.Find(nonContentSelector).Remove()

	var text string
	for _, sel := range contentSelectors {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			text = node.Text()
			break
		}
	}
	if text == "" {
		text = doc.Find("body").Text()
	}

	text = strings.Join(strings.Fields(text), " ")
	if len(text) > e.maxLen {
		cut := e.maxLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}
