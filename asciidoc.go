package ragsearch

import "strings"

// RenderAsciiDoc renders a report to AsciiDoc text. It is a pure function of
// the report: equal reports produce byte-identical output.
//
// The first top-level section with Level == 1 and a non-empty title becomes
// the document title (`= Title`). Its heading is not repeated in the body,
// but its content still renders in sequence. All other section headings are
// emitted one level deeper than their Level (`==` for Level 1), reserving
// the single `=` marker for the document title.
func RenderAsciiDoc(r Report) string {
	var b strings.Builder

	titleIdx := r.titleIndex()
	if titleIdx >= 0 {
		b.WriteString("= ")
		b.WriteString(r[titleIdx].Title)
		b.WriteString("\n\n")
	}

	for i, s := range r {
		renderAsciiDocSection(&b, s, i == titleIdx)
	}

	return b.String()
}

// renderAsciiDocSection renders a single section. elided marks the section
// whose title was already emitted as the document title: its heading is
// skipped and its empty-content placeholder is suppressed.
func renderAsciiDocSection(b *strings.Builder, s Section, elided bool) {
	titled := s.Title != "" && !elided
	if titled {
		b.WriteString(strings.Repeat("=", headingLevel(s.Level)+1))
		b.WriteString(" ")
		b.WriteString(s.Title)
		b.WriteString("\n\n")
	}

	switch c := s.Content.(type) {
	case ItemList:
		for _, item := range c {
			b.WriteString("* ")
			b.WriteString(item)
			b.WriteString("\n")
		}
		b.WriteString("\n")

	case ItemGroup:
		if len(c.Entries) == 0 {
			writeAsciiDocText(b, c.Placeholder, titled, false)
			return
		}
		for _, item := range c.Entries {
			b.WriteString(c.Label + ":: " + item.Primary + "\n")
			if item.Secondary != "" {
				b.WriteString(c.SecondaryLabel + "::: " + item.Secondary + "\n")
			}
			if item.Tertiary != "" {
				b.WriteString(c.TertiaryLabel + ":::: " + item.Tertiary + "\n")
			}
			b.WriteString("\n")
		}

	case Text:
		writeAsciiDocText(b, string(c), titled, true)

	case Subsections:
		// A nested section is never the document title.
		for _, sub := range c {
			renderAsciiDocSection(b, sub, false)
		}

	default:
		if titled {
			b.WriteString(noContent)
			b.WriteString("\n\n")
		}
	}
}

// writeAsciiDocText writes trimmed prose followed by a blank line. When
// emphasis is set, Markdown bold delimiters are translated to AsciiDoc bold.
func writeAsciiDocText(b *strings.Builder, text string, titled bool, emphasis bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		if titled {
			b.WriteString(noContent)
			b.WriteString("\n\n")
		}
		return
	}
	if emphasis {
		trimmed = strings.ReplaceAll(trimmed, "**", "*")
	}
	b.WriteString(trimmed)
	b.WriteString("\n\n")
}
