// Package session provides search session orchestration.
// It coordinates query enhancement, web search with depth-limited
// expansion, page downloading, local retrieval, and answer synthesis.
package session

import (
	"context"

	"github.com/fwojciec/ragsearch"
)

// Session orchestrates one search session end to end.
type Session struct {
	Searcher   ragsearch.WebSearcher
	Downloader ragsearch.PageDownloader
	Retriever  ragsearch.Retriever
	Generator  ragsearch.Generator
	Seen       ragsearch.SeenFilter
	Progress   ProgressFunc
	TopK       int
	MaxDepth   int
	Limit      int
	WebSearch  bool
}

// Step identifies a pipeline phase for progress reporting.
type Step int

const (
	StepEnhance Step = iota
	StepSearch
	StepDownload
	StepRetrieve
	StepSynthesize
)

// ProgressEvent reports the start of a pipeline phase.
type ProgressEvent struct {
	Step   Step
	Detail string
}

// ProgressFunc is a callback for reporting session progress.
type ProgressFunc func(event ProgressEvent)

// Run executes the pipeline for a query and returns the session result.
// Web search and download failures on expanded subqueries are skipped;
// failures on the primary query abort the session.
func (s *Session) Run(ctx context.Context, queryID, query string) (*ragsearch.SessionResult, error) {
	if queryID == "" {
		return nil, ragsearch.Errorf(ragsearch.EINVALID, "query ID required")
	}
	if query == "" {
		return nil, ragsearch.Errorf(ragsearch.EINVALID, "query required")
	}

	s.notify(StepEnhance, query)
	enhanced, err := s.Generator.EnhanceQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	res := &ragsearch.SessionResult{
		QueryID:       queryID,
		EnhancedQuery: enhanced,
	}

	if s.WebSearch && s.Searcher != nil {
		s.notify(StepSearch, enhanced)
		web, err := s.searchWithExpansion(ctx, enhanced)
		if err != nil {
			return nil, err
		}
		res.WebResults = web

		if s.Downloader != nil && len(web) > 0 {
			s.notify(StepDownload, "")
			groups, err := s.Downloader.Download(ctx, web)
			if err != nil {
				return nil, err
			}
			res.Groups = groups
		}
	}

	if s.Retriever != nil {
		s.notify(StepRetrieve, enhanced)
		topK := s.TopK
		if topK <= 0 {
			topK = ragsearch.DefaultTopK
		}
		local, err := s.Retriever.Retrieve(ctx, enhanced, topK)
		if err != nil {
			return nil, err
		}
		res.LocalResults = local
	}

	s.notify(StepSynthesize, "")
	answer, err := s.Generator.Synthesize(ctx, enhanced, res.WebResults, res.LocalResults)
	if err != nil {
		return nil, err
	}
	res.FinalAnswer = answer

	return res, nil
}

// searchWithExpansion searches the primary query, then expands it into
// subqueries up to MaxDepth levels deep. The seen filter deduplicates
// both subqueries and result URLs across rounds.
func (s *Session) searchWithExpansion(ctx context.Context, query string) ([]ragsearch.WebResult, error) {
	limit := s.Limit
	if limit <= 0 {
		limit = ragsearch.DefaultSearchLimit
	}
	maxDepth := s.MaxDepth
	if maxDepth < 0 {
		maxDepth = ragsearch.DefaultMaxDepth
	}

	s.markSeen(query)

	results, err := s.Searcher.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	all := s.dedupe(results, nil)

	frontier := []string{query}
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, q := range frontier {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			subs, err := s.Generator.ExpandQuery(ctx, q)
			if err != nil {
				continue
			}
			for _, sub := range subs {
				if s.alreadySeen(sub) {
					continue
				}
				s.markSeen(sub)

				results, err := s.Searcher.Search(ctx, sub, limit)
				if err != nil {
					continue
				}
				all = s.dedupe(results, all)
				next = append(next, sub)
			}
		}
		frontier = next
	}

	return all, nil
}

// dedupe appends results whose URLs have not been seen before.
func (s *Session) dedupe(results []ragsearch.WebResult, dst []ragsearch.WebResult) []ragsearch.WebResult {
	for _, r := range results {
		if s.alreadySeen(r.URL) {
			continue
		}
		s.markSeen(r.URL)
		dst = append(dst, r)
	}
	return dst
}

func (s *Session) markSeen(v string) {
	if s.Seen != nil {
		s.Seen.Add(v)
	}
}

func (s *Session) alreadySeen(v string) bool {
	return s.Seen != nil && s.Seen.Test(v)
}

func (s *Session) notify(step Step, detail string) {
	if s.Progress != nil {
		s.Progress(ProgressEvent{Step: step, Detail: detail})
	}
}
