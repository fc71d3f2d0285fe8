package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/ragsearch"
	"golang.org/x/sync/errgroup"
)

// DefaultDownloadTimeout is the default timeout for page downloads.
const DefaultDownloadTimeout = 15 * time.Second

// Ensure Downloader implements ragsearch.PageDownloader at compile time.
var _ ragsearch.PageDownloader = (*Downloader)(nil)

// Downloader fetches web results concurrently and saves them locally,
// grouped by domain. HTML pages have boilerplate stripped and are saved as
// Markdown; other content types are saved as-is. Failed downloads are
// skipped, preserving best-effort output.
type Downloader struct {
	// Dir is the directory downloaded pages are saved under, one
	// subdirectory per domain.
	Dir string

	// Extractor strips boilerplate from HTML pages.
	Extractor ragsearch.Extractor

	// Converter turns extracted HTML into Markdown.
	Converter ragsearch.Converter

	// Limiter rate-limits requests per domain. Optional.
	Limiter ragsearch.DomainLimiter

	// Concurrency caps parallel downloads. Defaults to 5.
	Concurrency int

	// Client is the HTTP client used for downloads. Defaults to a client
	// with DefaultDownloadTimeout.
	Client *http.Client
}

// downloaded is the outcome of fetching a single web result.
type downloaded struct {
	domain string
	page   ragsearch.DownloadedPage
	ok     bool
}

// Download fetches the given results and returns them grouped by domain.
// Group order is the first-seen order of domains in results; page order
// within a group follows input order. The ordering is deterministic even
// though downloads run concurrently.
func (d *Downloader) Download(ctx context.Context, results []ragsearch.WebResult) ([]ragsearch.DomainGroup, error) {
	if len(results) == 0 {
		return nil, nil
	}

	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	client := d.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultDownloadTimeout}
	}

	outcomes := make([]downloaded, len(results))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, res := range results {
		g.Go(func() error {
			out, err := d.fetchOne(gctx, client, res)
			if err != nil {
				// Context cancellation aborts the batch; anything else is a
				// per-page failure and the page is skipped.
				if gctx.Err() != nil {
					return gctx.Err()
				}
				return nil
			}
			outcomes[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return groupByDomain(outcomes), nil
}

// fetchOne downloads a single result and saves it under Dir.
func (d *Downloader) fetchOne(ctx context.Context, client *http.Client, res ragsearch.WebResult) (downloaded, error) {
	u, err := url.Parse(res.URL)
	if err != nil || u.Hostname() == "" {
		return downloaded{}, ragsearch.Errorf(ragsearch.EINVALID, "invalid result URL %q", res.URL)
	}
	domain := u.Hostname()

	if d.Limiter != nil {
		if err := d.Limiter.Wait(ctx, domain); err != nil {
			return downloaded{}, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, res.URL, nil)
	if err != nil {
		return downloaded{}, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return downloaded{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return downloaded{}, ragsearch.Errorf(ragsearch.EINTERNAL, "HTTP %d for %s", resp.StatusCode, res.URL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return downloaded{}, err
	}

	contentType := resp.Header.Get("Content-Type")
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	content := body
	relPath, err := pagePath(u)
	if err != nil {
		return downloaded{}, err
	}
	if contentType == "text/html" && d.Extractor != nil && d.Converter != nil {
		markdown, err := d.toMarkdown(string(body))
		if err != nil {
			return downloaded{}, err
		}
		content = []byte(markdown)
		relPath = strings.TrimSuffix(relPath, filepath.Ext(relPath)) + ".md"
	}

	fullPath := filepath.Join(d.Dir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return downloaded{}, err
	}
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return downloaded{}, err
	}

	return downloaded{
		domain: domain,
		page: ragsearch.DownloadedPage{
			URL:         res.URL,
			FilePath:    fullPath,
			ContentType: contentType,
		},
		ok: true,
	}, nil
}

// toMarkdown extracts the main content of an HTML page and converts it.
func (d *Downloader) toMarkdown(html string) (string, error) {
	extracted, err := d.Extractor.Extract(html)
	if err != nil {
		return "", err
	}
	return d.Converter.Convert(extracted.ContentHTML)
}

// pagePath maps a page URL to a relative file path under its domain
// directory. The root path becomes index.html-style content named index.
// Result URLs come from open-web search, so a path whose cleaned form
// would land outside the domain directory is rejected.
func pagePath(u *url.URL) (string, error) {
	path := strings.Trim(u.Path, "/")
	if path == "" {
		path = "index"
	}
	rel := filepath.Join(u.Hostname(), filepath.FromSlash(path))
	if !filepath.IsLocal(rel) || !strings.HasPrefix(rel, u.Hostname()+string(filepath.Separator)) {
		return "", ragsearch.Errorf(ragsearch.EINVALID, "unsafe result path %q", u.Path)
	}
	return rel, nil
}

// groupByDomain builds the ordered domain grouping from download outcomes.
func groupByDomain(outcomes []downloaded) []ragsearch.DomainGroup {
	var groups []ragsearch.DomainGroup
	index := make(map[string]int)

	for _, out := range outcomes {
		if !out.ok {
			continue
		}
		i, seen := index[out.domain]
		if !seen {
			i = len(groups)
			index[out.domain] = i
			groups = append(groups, ragsearch.DomainGroup{Domain: out.domain})
		}
		groups[i].Pages = append(groups[i].Pages, out.page)
	}

	return groups
}
