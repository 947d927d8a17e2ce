package research

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const ddgEndpoint = "https://html.duckduckgo.com/html/"

// DuckDuckGo is a SearchProvider backed by DuckDuckGo's HTML endpoint,
// which needs no API key.
type DuckDuckGo struct {
	client   *http.Client
	endpoint string
}

// NewDuckDuckGo creates a DuckDuckGo search provider.
func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: ddgEndpoint,
	}
}

// Search returns up to maxResults hits for the query. Errors (network,
// rate-limit, unexpected markup) are returned to the caller, which treats
// them as "no research available".
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]SearchHit, error) {
	reqURL := d.endpoint + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search results: %w", err)
	}

	var hits []SearchHit
	doc.Find("a.result__a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		target := resolveRedirect(href)
		title := strings.TrimSpace(s.Text())
		if target == "" || title == "" {
			return true
		}
		hits = append(hits, SearchHit{URL: target, Title: title})
		return len(hits) < maxResults
	})

	return hits, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=<url> redirect links.
// Non-redirect links pass through unchanged.
func resolveRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	if uddg := u.Query().Get("uddg"); uddg != "" {
		return uddg
	}
	if u.Host == "" || u.Scheme == "" {
		return ""
	}
	return href
}
