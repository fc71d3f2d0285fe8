// Package mock provides mock implementations of ragsearch interfaces for
// testing.
package mock

import (
	"context"

	"github.com/fwojciec/ragsearch"
)

var _ ragsearch.WebSearcher = (*WebSearcher)(nil)

// WebSearcher is a mock implementation of ragsearch.WebSearcher.
type WebSearcher struct {
	SearchFn func(ctx context.Context, query string, limit int) ([]ragsearch.WebResult, error)
}

func (s *WebSearcher) Search(ctx context.Context, query string, limit int) ([]ragsearch.WebResult, error) {
	return s.SearchFn(ctx, query, limit)
}

var _ ragsearch.PageDownloader = (*PageDownloader)(nil)

// PageDownloader is a mock implementation of ragsearch.PageDownloader.
type PageDownloader struct {
	DownloadFn func(ctx context.Context, results []ragsearch.WebResult) ([]ragsearch.DomainGroup, error)
}

func (d *PageDownloader) Download(ctx context.Context, results []ragsearch.WebResult) ([]ragsearch.DomainGroup, error) {
	return d.DownloadFn(ctx, results)
}

var _ ragsearch.Retriever = (*Retriever)(nil)

// Retriever is a mock implementation of ragsearch.Retriever.
type Retriever struct {
	RetrieveFn func(ctx context.Context, query string, topK int) ([]ragsearch.LocalResult, error)
}

func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]ragsearch.LocalResult, error) {
	return r.RetrieveFn(ctx, query, topK)
}

var _ ragsearch.Generator = (*Generator)(nil)

// Generator is a mock implementation of ragsearch.Generator.
type Generator struct {
	EnhanceQueryFn func(ctx context.Context, query string) (string, error)
	ExpandQueryFn  func(ctx context.Context, query string) ([]string, error)
	SynthesizeFn   func(ctx context.Context, query string, web []ragsearch.WebResult, local []ragsearch.LocalResult) (string, error)
}

func (g *Generator) EnhanceQuery(ctx context.Context, query string) (string, error) {
	return g.EnhanceQueryFn(ctx, query)
}

func (g *Generator) ExpandQuery(ctx context.Context, query string) ([]string, error) {
	return g.ExpandQueryFn(ctx, query)
}

func (g *Generator) Synthesize(ctx context.Context, query string, web []ragsearch.WebResult, local []ragsearch.LocalResult) (string, error) {
	return g.SynthesizeFn(ctx, query, web, local)
}

var _ ragsearch.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of ragsearch.ReportWriter.
type ReportWriter struct {
	WriteFn func(ctx context.Context, queryID string, answer, full ragsearch.Report) (string, error)
}

func (w *ReportWriter) Write(ctx context.Context, queryID string, answer, full ragsearch.Report) (string, error) {
	return w.WriteFn(ctx, queryID, answer, full)
}

var _ ragsearch.SeenFilter = (*SeenFilter)(nil)

// SeenFilter is a mock implementation of ragsearch.SeenFilter.
type SeenFilter struct {
	AddFn  func(s string)
	TestFn func(s string) bool
}

func (f *SeenFilter) Add(s string) {
	f.AddFn(s)
}

func (f *SeenFilter) Test(s string) bool {
	return f.TestFn(s)
}

var _ ragsearch.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of ragsearch.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
