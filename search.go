package ragsearch

import "context"

// WebResult is a single web search hit.
type WebResult struct {
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// LocalResult is a single hit from the locally indexed corpus.
// Page is 0 when the source document has no pagination.
type LocalResult struct {
	FilePath string `json:"filePath"`
	Page     int    `json:"page,omitempty"`
	Snippet  string `json:"snippet"`
}

// DownloadedPage is a web result that was fetched and saved locally.
type DownloadedPage struct {
	URL         string `json:"url"`
	FilePath    string `json:"filePath"`
	ContentType string `json:"contentType"`
}

// DomainGroup holds the downloaded pages for one domain. Groups form an
// ordered mapping so rendered output is deterministic.
type DomainGroup struct {
	Domain string           `json:"domain"`
	Pages  []DownloadedPage `json:"pages"`
}

// SessionResult holds the outputs of a completed search session. It is the
// input to report building.
type SessionResult struct {
	QueryID              string        `json:"queryId"`
	EnhancedQuery        string        `json:"enhancedQuery"`
	FinalAnswer          string        `json:"finalAnswer"`
	WebResults           []WebResult   `json:"webResults"`
	LocalResults         []LocalResult `json:"localResults"`
	Groups               []DomainGroup `json:"groups,omitempty"`
	PreviousResults      string        `json:"previousResults,omitempty"`
	FollowUpConversation string        `json:"followUpConversation,omitempty"`
}

// WebSearcher performs a web search and returns up to limit results.
type WebSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]WebResult, error)
}

// PageDownloader fetches web results and saves them locally, grouped by
// domain. Group order is the first-seen order of domains in results.
type PageDownloader interface {
	Download(ctx context.Context, results []WebResult) ([]DomainGroup, error)
}

// Retriever retrieves the topK most relevant corpus documents for a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]LocalResult, error)
}

// Generator produces model completions for the pipeline steps.
type Generator interface {
	// EnhanceQuery rewrites the user query for better retrieval.
	EnhanceQuery(ctx context.Context, query string) (string, error)

	// ExpandQuery proposes follow-up subqueries for depth-limited expansion.
	ExpandQuery(ctx context.Context, query string) ([]string, error)

	// Synthesize produces the final answer from the query and gathered context.
	Synthesize(ctx context.Context, query string, web []WebResult, local []LocalResult) (string, error)
}

// ReportWriter persists the rendered reports for a session.
// Write returns the path of the canonical (full Markdown) report.
type ReportWriter interface {
	Write(ctx context.Context, queryID string, answer, full Report) (string, error)
}

// SeenFilter deduplicates URLs and subqueries across expansion rounds.
// Test may return false positives but never false negatives.
type SeenFilter interface {
	Add(s string)
	Test(s string) bool
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
