// Package http provides HTTP-based implementations of web search and page
// downloading for static content that does not require JavaScript rendering.
package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ragsearch"
)

// DefaultEndpoint is the DuckDuckGo HTML (non-JS) search endpoint.
const DefaultEndpoint = "https://html.duckduckgo.com/html/"

// DefaultSearchTimeout is the default timeout for search requests.
const DefaultSearchTimeout = 10 * time.Second

// Ensure Searcher implements ragsearch.WebSearcher at compile time.
var _ ragsearch.WebSearcher = (*Searcher)(nil)

// Searcher implements ragsearch.WebSearcher against the DuckDuckGo HTML
// endpoint, which serves static markup parseable without a browser.
type Searcher struct {
	client   *http.Client
	endpoint string
}

// SearcherOption configures a Searcher.
type SearcherOption func(*Searcher)

// WithEndpoint overrides the search endpoint. Used in tests.
func WithEndpoint(endpoint string) SearcherOption {
	return func(s *Searcher) {
		s.endpoint = endpoint
	}
}

// WithSearchTimeout sets the timeout for search requests.
func WithSearchTimeout(d time.Duration) SearcherOption {
	return func(s *Searcher) {
		s.client.Timeout = d
	}
}

// NewSearcher creates a new Searcher.
func NewSearcher(opts ...SearcherOption) *Searcher {
	s := &Searcher{
		client:   &http.Client{Timeout: DefaultSearchTimeout},
		endpoint: DefaultEndpoint,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search performs a web search and returns up to limit results.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]ragsearch.WebResult, error) {
	if query == "" {
		return nil, ragsearch.Errorf(ragsearch.EINVALID, "query required")
	}
	if limit <= 0 {
		limit = ragsearch.DefaultSearchLimit
	}

	form := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from search endpoint", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	return parseResults(doc, limit), nil
}

// parseResults extracts search hits from a DuckDuckGo HTML results page.
func parseResults(doc *goquery.Document, limit int) []ragsearch.WebResult {
	var results []ragsearch.WebResult

	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Find("a.result__a").Attr("href")
		if !ok {
			return true
		}

		results = append(results, ragsearch.WebResult{
			URL:     resolveRedirect(href),
			Snippet: strings.TrimSpace(sel.Find(".result__snippet").Text()),
		})
		return len(results) < limit
	})

	return results
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=<target> redirect links.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
