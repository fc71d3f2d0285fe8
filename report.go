package ragsearch

import "strconv"

// Section titles and placeholders used by the report builder. Exported so
// callers (and tests) do not have to repeat the literal strings.
const (
	TitleFinalAnswer     = "Final Aggregated Answer"
	TitleEnhancedQuery   = "Enhanced Query"
	TitleWebResults      = "Web Search Results"
	TitleGroupedResults  = "Grouped Web Results by Domain"
	TitleLocalResults    = "Local Retrieval Results"
	TitlePreviousResults = "Previous Results Integrated"
	TitleFollowUp        = "Follow-Up Conversation"

	PlaceholderNoWebResults   = "_No web results found_"
	PlaceholderNoLocalResults = "_No local results found_"
)

// BuildReports assembles the two reports persisted for a session: an
// answer-only report and a full aggregate report. The full report repeats
// the final answer so it is readable standalone. Construction is pure; no
// I/O happens here.
func BuildReports(res *SessionResult) (answer, full Report) {
	answer = Report{
		{Level: 1, Title: TitleFinalAnswer, Content: Text(res.FinalAnswer)},
	}

	full = Report{
		{Level: 1, Title: "Aggregated Results for Query ID: " + res.QueryID},
		{Level: 2, Title: TitleEnhancedQuery, Content: Text(res.EnhancedQuery)},
		{Level: 1, Title: TitleFinalAnswer, Content: Text(res.FinalAnswer)},
		{Level: 2, Title: TitleWebResults, Content: webContent(res.WebResults)},
	}

	if len(res.Groups) > 0 {
		full = append(full, Section{
			Level:   2,
			Title:   TitleGroupedResults,
			Content: groupedContent(res.Groups),
		})
	}

	full = append(full, Section{
		Level:   2,
		Title:   TitleLocalResults,
		Content: localContent(res.LocalResults),
	})

	if res.PreviousResults != "" {
		full = append(full, Section{
			Level:   2,
			Title:   TitlePreviousResults,
			Content: Text(res.PreviousResults),
		})
	}
	if res.FollowUpConversation != "" {
		full = append(full, Section{
			Level:   2,
			Title:   TitleFollowUp,
			Content: Text(res.FollowUpConversation),
		})
	}

	return answer, full
}

func webContent(results []WebResult) Content {
	group := ItemGroup{
		Label:          "URL",
		SecondaryLabel: "Snippet",
		Placeholder:    PlaceholderNoWebResults,
	}
	for _, r := range results {
		group.Entries = append(group.Entries, Item{
			Primary:   r.URL,
			Secondary: r.Snippet,
		})
	}
	return group
}

func groupedContent(groups []DomainGroup) Content {
	var sub Subsections
	for _, g := range groups {
		group := ItemGroup{
			Label:          "URL",
			SecondaryLabel: "File Path",
			TertiaryLabel:  "Content Type",
		}
		for _, p := range g.Pages {
			group.Entries = append(group.Entries, Item{
				Primary:   p.URL,
				Secondary: p.FilePath,
				Tertiary:  p.ContentType,
			})
		}
		sub = append(sub, Section{
			Level:   3,
			Title:   "Domain: " + g.Domain,
			Content: group,
		})
	}
	return sub
}

func localContent(results []LocalResult) Content {
	group := ItemGroup{
		Label:          "File",
		SecondaryLabel: "Page",
		TertiaryLabel:  "Snippet",
		Placeholder:    PlaceholderNoLocalResults,
	}
	for _, r := range results {
		item := Item{Primary: r.FilePath}
		if r.Page > 0 {
			// Snippet moves to the tertiary slot when a page number exists.
			item.Secondary = strconv.Itoa(r.Page)
			item.Tertiary = r.Snippet
		} else {
			item.Secondary = r.Snippet
		}
		group.Entries = append(group.Entries, item)
	}
	return group
}
