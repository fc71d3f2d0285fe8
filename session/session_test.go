package session_test

import (
	"context"
	"testing"

	"github.com/fwojciec/ragsearch"
	"github.com/fwojciec/ragsearch/bloom"
	"github.com/fwojciec/ragsearch/mock"
	"github.com/fwojciec/ragsearch/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGenerator returns a mock generator with pass-through defaults.
func newGenerator() *mock.Generator {
	return &mock.Generator{
		EnhanceQueryFn: func(_ context.Context, query string) (string, error) {
			return "enhanced: " + query, nil
		},
		ExpandQueryFn: func(_ context.Context, _ string) ([]string, error) {
			return nil, nil
		},
		SynthesizeFn: func(_ context.Context, _ string, _ []ragsearch.WebResult, _ []ragsearch.LocalResult) (string, error) {
			return "the answer", nil
		},
	}
}

func TestSession_Run(t *testing.T) {
	t.Parallel()

	t.Run("full pipeline", func(t *testing.T) {
		t.Parallel()

		var searchedQueries []string
		web := []ragsearch.WebResult{
			{URL: "https://a.test/1", Snippet: "a"},
			{URL: "https://b.test/1", Snippet: "b"},
		}
		local := []ragsearch.LocalResult{
			{FilePath: "docs/guide.md", Snippet: "local hit"},
		}
		groups := []ragsearch.DomainGroup{
			{Domain: "a.test", Pages: []ragsearch.DownloadedPage{{URL: "https://a.test/1"}}},
		}

		gen := newGenerator()
		gen.SynthesizeFn = func(_ context.Context, query string, w []ragsearch.WebResult, l []ragsearch.LocalResult) (string, error) {
			assert.Equal(t, "enhanced: wal mode", query)
			assert.Equal(t, web, w)
			assert.Equal(t, local, l)
			return "the answer", nil
		}

		s := &session.Session{
			Searcher: &mock.WebSearcher{
				SearchFn: func(_ context.Context, query string, limit int) ([]ragsearch.WebResult, error) {
					searchedQueries = append(searchedQueries, query)
					assert.Equal(t, ragsearch.DefaultSearchLimit, limit)
					return web, nil
				},
			},
			Downloader: &mock.PageDownloader{
				DownloadFn: func(_ context.Context, results []ragsearch.WebResult) ([]ragsearch.DomainGroup, error) {
					assert.Equal(t, web, results)
					return groups, nil
				},
			},
			Retriever: &mock.Retriever{
				RetrieveFn: func(_ context.Context, query string, topK int) ([]ragsearch.LocalResult, error) {
					assert.Equal(t, "enhanced: wal mode", query)
					assert.Equal(t, ragsearch.DefaultTopK, topK)
					return local, nil
				},
			},
			Generator: gen,
			Seen:      bloom.NewFilter(1000, 0.01),
			WebSearch: true,
		}

		res, err := s.Run(context.Background(), "q1", "wal mode")
		require.NoError(t, err)

		assert.Equal(t, "q1", res.QueryID)
		assert.Equal(t, "enhanced: wal mode", res.EnhancedQuery)
		assert.Equal(t, "the answer", res.FinalAnswer)
		assert.Equal(t, web, res.WebResults)
		assert.Equal(t, local, res.LocalResults)
		assert.Equal(t, groups, res.Groups)
		assert.Equal(t, []string{"enhanced: wal mode"}, searchedQueries)
	})

	t.Run("web search disabled skips search and download", func(t *testing.T) {
		t.Parallel()

		s := &session.Session{
			Searcher: &mock.WebSearcher{
				SearchFn: func(_ context.Context, _ string, _ int) ([]ragsearch.WebResult, error) {
					t.Fatal("unexpected search")
					return nil, nil
				},
			},
			Retriever: &mock.Retriever{
				RetrieveFn: func(_ context.Context, _ string, _ int) ([]ragsearch.LocalResult, error) {
					return nil, nil
				},
			},
			Generator: newGenerator(),
			WebSearch: false,
		}

		res, err := s.Run(context.Background(), "q1", "query")
		require.NoError(t, err)

		assert.Empty(t, res.WebResults)
		assert.Empty(t, res.Groups)
	})

	t.Run("expands subqueries and deduplicates urls", func(t *testing.T) {
		t.Parallel()

		resultsByQuery := map[string][]ragsearch.WebResult{
			"enhanced: q": {
				{URL: "https://a.test/1", Snippet: "a"},
			},
			"sub one": {
				{URL: "https://a.test/1", Snippet: "dup"},
				{URL: "https://b.test/1", Snippet: "b"},
			},
			"sub two": {
				{URL: "https://c.test/1", Snippet: "c"},
			},
		}

		gen := newGenerator()
		gen.ExpandQueryFn = func(_ context.Context, query string) ([]string, error) {
			if query == "enhanced: q" {
				return []string{"sub one", "sub two"}, nil
			}
			return nil, nil
		}

		s := &session.Session{
			Searcher: &mock.WebSearcher{
				SearchFn: func(_ context.Context, query string, _ int) ([]ragsearch.WebResult, error) {
					return resultsByQuery[query], nil
				},
			},
			Generator: gen,
			Seen:      bloom.NewFilter(1000, 0.01),
			MaxDepth:  1,
			WebSearch: true,
		}

		res, err := s.Run(context.Background(), "q1", "q")
		require.NoError(t, err)

		var urls []string
		for _, r := range res.WebResults {
			urls = append(urls, r.URL)
		}
		assert.Equal(t, []string{"https://a.test/1", "https://b.test/1", "https://c.test/1"}, urls)
	})

	t.Run("skips repeated subqueries", func(t *testing.T) {
		t.Parallel()

		var searched []string
		gen := newGenerator()
		gen.ExpandQueryFn = func(_ context.Context, query string) ([]string, error) {
			return []string{"same sub", "same sub"}, nil
		}

		s := &session.Session{
			Searcher: &mock.WebSearcher{
				SearchFn: func(_ context.Context, query string, _ int) ([]ragsearch.WebResult, error) {
					searched = append(searched, query)
					return nil, nil
				},
			},
			Generator: gen,
			Seen:      bloom.NewFilter(1000, 0.01),
			MaxDepth:  1,
			WebSearch: true,
		}

		_, err := s.Run(context.Background(), "q1", "q")
		require.NoError(t, err)

		assert.Equal(t, []string{"enhanced: q", "same sub"}, searched)
	})

	t.Run("expansion failure is skipped", func(t *testing.T) {
		t.Parallel()

		gen := newGenerator()
		gen.ExpandQueryFn = func(_ context.Context, _ string) ([]string, error) {
			return nil, ragsearch.Errorf(ragsearch.EINTERNAL, "model unavailable")
		}

		s := &session.Session{
			Searcher: &mock.WebSearcher{
				SearchFn: func(_ context.Context, _ string, _ int) ([]ragsearch.WebResult, error) {
					return []ragsearch.WebResult{{URL: "https://a.test/1"}}, nil
				},
			},
			Generator: gen,
			Seen:      bloom.NewFilter(1000, 0.01),
			MaxDepth:  2,
			WebSearch: true,
		}

		res, err := s.Run(context.Background(), "q1", "q")
		require.NoError(t, err)

		assert.Len(t, res.WebResults, 1)
	})

	t.Run("primary search failure aborts", func(t *testing.T) {
		t.Parallel()

		s := &session.Session{
			Searcher: &mock.WebSearcher{
				SearchFn: func(_ context.Context, _ string, _ int) ([]ragsearch.WebResult, error) {
					return nil, ragsearch.Errorf(ragsearch.EINTERNAL, "search unavailable")
				},
			},
			Generator: newGenerator(),
			WebSearch: true,
		}

		_, err := s.Run(context.Background(), "q1", "q")
		assert.Equal(t, ragsearch.EINTERNAL, ragsearch.ErrorCode(err))
	})

	t.Run("no downloads without web results", func(t *testing.T) {
		t.Parallel()

		s := &session.Session{
			Searcher: &mock.WebSearcher{
				SearchFn: func(_ context.Context, _ string, _ int) ([]ragsearch.WebResult, error) {
					return nil, nil
				},
			},
			Downloader: &mock.PageDownloader{
				DownloadFn: func(_ context.Context, _ []ragsearch.WebResult) ([]ragsearch.DomainGroup, error) {
					t.Fatal("unexpected download")
					return nil, nil
				},
			},
			Generator: newGenerator(),
			WebSearch: true,
		}

		res, err := s.Run(context.Background(), "q1", "q")
		require.NoError(t, err)
		assert.Empty(t, res.Groups)
	})

	t.Run("reports progress in phase order", func(t *testing.T) {
		t.Parallel()

		var steps []session.Step
		s := &session.Session{
			Searcher: &mock.WebSearcher{
				SearchFn: func(_ context.Context, _ string, _ int) ([]ragsearch.WebResult, error) {
					return []ragsearch.WebResult{{URL: "https://a.test/1"}}, nil
				},
			},
			Downloader: &mock.PageDownloader{
				DownloadFn: func(_ context.Context, _ []ragsearch.WebResult) ([]ragsearch.DomainGroup, error) {
					return nil, nil
				},
			},
			Retriever: &mock.Retriever{
				RetrieveFn: func(_ context.Context, _ string, _ int) ([]ragsearch.LocalResult, error) {
					return nil, nil
				},
			},
			Generator: newGenerator(),
			Progress: func(e session.ProgressEvent) {
				steps = append(steps, e.Step)
			},
			WebSearch: true,
		}

		_, err := s.Run(context.Background(), "q1", "q")
		require.NoError(t, err)

		assert.Equal(t, []session.Step{
			session.StepEnhance,
			session.StepSearch,
			session.StepDownload,
			session.StepRetrieve,
			session.StepSynthesize,
		}, steps)
	})

	t.Run("missing query ID", func(t *testing.T) {
		t.Parallel()

		s := &session.Session{Generator: newGenerator()}
		_, err := s.Run(context.Background(), "", "q")
		assert.Equal(t, ragsearch.EINVALID, ragsearch.ErrorCode(err))
	})

	t.Run("missing query", func(t *testing.T) {
		t.Parallel()

		s := &session.Session{Generator: newGenerator()}
		_, err := s.Run(context.Background(), "q1", "")
		assert.Equal(t, ragsearch.EINVALID, ragsearch.ErrorCode(err))
	})

	t.Run("enhancement failure aborts", func(t *testing.T) {
		t.Parallel()

		gen := newGenerator()
		gen.EnhanceQueryFn = func(_ context.Context, _ string) (string, error) {
			return "", ragsearch.Errorf(ragsearch.EINTERNAL, "model unavailable")
		}

		s := &session.Session{Generator: gen}
		_, err := s.Run(context.Background(), "q1", "q")
		assert.Equal(t, ragsearch.EINTERNAL, ragsearch.ErrorCode(err))
	})
}
