package ragsearch_test

import (
	"testing"

	"github.com/fwojciec/ragsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReports(t *testing.T) {
	t.Parallel()

	t.Run("answer report holds only the final answer", func(t *testing.T) {
		t.Parallel()

		answer, _ := ragsearch.BuildReports(&ragsearch.SessionResult{
			QueryID:     "q1",
			FinalAnswer: "the answer",
		})

		require.Len(t, answer, 1)
		assert.Equal(t, 1, answer[0].Level)
		assert.Equal(t, "Final Aggregated Answer", answer[0].Title)
		assert.Equal(t, ragsearch.Text("the answer"), answer[0].Content)
	})

	t.Run("full report leads with header, enhanced query and answer", func(t *testing.T) {
		t.Parallel()

		_, full := ragsearch.BuildReports(&ragsearch.SessionResult{
			QueryID:       "q1",
			EnhancedQuery: "better question",
			FinalAnswer:   "the answer",
		})

		require.GreaterOrEqual(t, len(full), 4)

		assert.Equal(t, 1, full[0].Level)
		assert.Equal(t, "Aggregated Results for Query ID: q1", full[0].Title)
		assert.Nil(t, full[0].Content)

		assert.Equal(t, 2, full[1].Level)
		assert.Equal(t, "Enhanced Query", full[1].Title)
		assert.Equal(t, ragsearch.Text("better question"), full[1].Content)

		// The answer is repeated in the full report so it reads standalone.
		assert.Equal(t, 1, full[2].Level)
		assert.Equal(t, "Final Aggregated Answer", full[2].Title)
		assert.Equal(t, ragsearch.Text("the answer"), full[2].Content)
	})

	t.Run("web results become a labeled item group", func(t *testing.T) {
		t.Parallel()

		_, full := ragsearch.BuildReports(&ragsearch.SessionResult{
			QueryID: "q1",
			WebResults: []ragsearch.WebResult{
				{URL: "https://a.example", Snippet: "first"},
				{URL: "https://b.example", Snippet: "second"},
			},
		})

		section := findSection(t, full, "Web Search Results")
		group, ok := section.Content.(ragsearch.ItemGroup)
		require.True(t, ok)

		assert.Equal(t, "URL", group.Label)
		assert.Equal(t, "Snippet", group.SecondaryLabel)
		require.Len(t, group.Entries, 2)
		assert.Equal(t, "https://a.example", group.Entries[0].Primary)
		assert.Equal(t, "first", group.Entries[0].Secondary)
	})

	t.Run("empty web results degrade to the exact placeholder", func(t *testing.T) {
		t.Parallel()

		_, full := ragsearch.BuildReports(&ragsearch.SessionResult{QueryID: "q1"})

		section := findSection(t, full, "Web Search Results")
		group, ok := section.Content.(ragsearch.ItemGroup)
		require.True(t, ok)

		assert.Empty(t, group.Entries)
		assert.Equal(t, "_No web results found_", group.Placeholder)
	})

	t.Run("grouped results become nested per-domain sections in input order", func(t *testing.T) {
		t.Parallel()

		_, full := ragsearch.BuildReports(&ragsearch.SessionResult{
			QueryID: "q1",
			Groups: []ragsearch.DomainGroup{
				{Domain: "b.example", Pages: []ragsearch.DownloadedPage{
					{URL: "https://b.example/x", FilePath: "pages/b/x.md", ContentType: "text/html"},
				}},
				{Domain: "a.example", Pages: []ragsearch.DownloadedPage{
					{URL: "https://a.example/y", FilePath: "pages/a/y.md", ContentType: "text/html"},
				}},
			},
		})

		section := findSection(t, full, "Grouped Web Results by Domain")
		sub, ok := section.Content.(ragsearch.Subsections)
		require.True(t, ok)
		require.Len(t, sub, 2)

		assert.Equal(t, "Domain: b.example", sub[0].Title)
		assert.Equal(t, 3, sub[0].Level)
		assert.Equal(t, "Domain: a.example", sub[1].Title)

		group, ok := sub[0].Content.(ragsearch.ItemGroup)
		require.True(t, ok)
		assert.Equal(t, "URL", group.Label)
		assert.Equal(t, "File Path", group.SecondaryLabel)
		assert.Equal(t, "Content Type", group.TertiaryLabel)
		require.Len(t, group.Entries, 1)
		assert.Equal(t, "pages/b/x.md", group.Entries[0].Secondary)
	})

	t.Run("omits grouped section when no groups", func(t *testing.T) {
		t.Parallel()

		_, full := ragsearch.BuildReports(&ragsearch.SessionResult{QueryID: "q1"})

		for _, s := range full {
			assert.NotEqual(t, "Grouped Web Results by Domain", s.Title)
		}
	})

	t.Run("local result with page puts snippet in tertiary slot", func(t *testing.T) {
		t.Parallel()

		_, full := ragsearch.BuildReports(&ragsearch.SessionResult{
			QueryID: "q1",
			LocalResults: []ragsearch.LocalResult{
				{FilePath: "a.pdf", Page: 3, Snippet: "hello"},
			},
		})

		section := findSection(t, full, "Local Retrieval Results")
		group, ok := section.Content.(ragsearch.ItemGroup)
		require.True(t, ok)

		require.Len(t, group.Entries, 1)
		assert.Equal(t, "a.pdf", group.Entries[0].Primary)
		assert.Equal(t, "3", group.Entries[0].Secondary)
		assert.Equal(t, "hello", group.Entries[0].Tertiary)
	})

	t.Run("local result without page puts snippet in secondary slot", func(t *testing.T) {
		t.Parallel()

		_, full := ragsearch.BuildReports(&ragsearch.SessionResult{
			QueryID: "q1",
			LocalResults: []ragsearch.LocalResult{
				{FilePath: "notes.md", Snippet: "hello"},
			},
		})

		section := findSection(t, full, "Local Retrieval Results")
		group, ok := section.Content.(ragsearch.ItemGroup)
		require.True(t, ok)

		require.Len(t, group.Entries, 1)
		assert.Equal(t, "hello", group.Entries[0].Secondary)
		assert.Empty(t, group.Entries[0].Tertiary)
	})

	t.Run("empty local results degrade to the exact placeholder", func(t *testing.T) {
		t.Parallel()

		_, full := ragsearch.BuildReports(&ragsearch.SessionResult{QueryID: "q1"})

		section := findSection(t, full, "Local Retrieval Results")
		group, ok := section.Content.(ragsearch.ItemGroup)
		require.True(t, ok)

		assert.Equal(t, "_No local results found_", group.Placeholder)
	})

	t.Run("includes optional trailing sections only when present", func(t *testing.T) {
		t.Parallel()

		_, without := ragsearch.BuildReports(&ragsearch.SessionResult{QueryID: "q1"})
		for _, s := range without {
			assert.NotEqual(t, "Previous Results Integrated", s.Title)
			assert.NotEqual(t, "Follow-Up Conversation", s.Title)
		}

		_, with := ragsearch.BuildReports(&ragsearch.SessionResult{
			QueryID:              "q1",
			PreviousResults:      "earlier findings",
			FollowUpConversation: "Q: more? A: yes",
		})

		prev := findSection(t, with, "Previous Results Integrated")
		assert.Equal(t, ragsearch.Text("earlier findings"), prev.Content)
		assert.Equal(t, 2, prev.Level)

		followUp := findSection(t, with, "Follow-Up Conversation")
		assert.Equal(t, ragsearch.Text("Q: more? A: yes"), followUp.Content)
	})

	t.Run("full report renders with query header as asciidoc title", func(t *testing.T) {
		t.Parallel()

		_, full := ragsearch.BuildReports(&ragsearch.SessionResult{
			QueryID:     "q1",
			FinalAnswer: "answer",
		})

		out := ragsearch.RenderAsciiDoc(full)

		assert.Contains(t, out, "= Aggregated Results for Query ID: q1\n\n")
		assert.Contains(t, out, "== Final Aggregated Answer\n\n")
	})
}

// findSection returns the first top-level section with the given title.
func findSection(t *testing.T, r ragsearch.Report, title string) ragsearch.Section {
	t.Helper()
	for _, s := range r {
		if s.Title == title {
			return s
		}
	}
	t.Fatalf("section %q not found", title)
	return ragsearch.Section{}
}
