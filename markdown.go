package ragsearch

import "strings"

// noContent is emitted for sections that have a title but nothing to say.
const noContent = "_No content for this section._"

// RenderMarkdown renders a report to Markdown text. It is a pure function of
// the report: equal reports produce byte-identical output.
func RenderMarkdown(r Report) string {
	var b strings.Builder
	renderMarkdownSections(&b, r)
	return b.String()
}

func renderMarkdownSections(b *strings.Builder, sections []Section) {
	for _, s := range sections {
		titled := s.Title != ""
		if titled {
			b.WriteString(strings.Repeat("#", headingLevel(s.Level)))
			b.WriteString(" ")
			b.WriteString(s.Title)
			b.WriteString("\n\n")
		}

		switch c := s.Content.(type) {
		case ItemList:
			for _, item := range c {
				b.WriteString("- ")
				b.WriteString(item)
				b.WriteString("\n")
			}
			b.WriteString("\n")

		case ItemGroup:
			if len(c.Entries) == 0 {
				writeMarkdownText(b, c.Placeholder, titled)
				continue
			}
			for _, item := range c.Entries {
				b.WriteString("- **" + c.Label + ":** " + item.Primary + "\n")
				if item.Secondary != "" {
					b.WriteString("  - **" + c.SecondaryLabel + ":** " + item.Secondary + "\n")
				}
				if item.Tertiary != "" {
					b.WriteString("    - **" + c.TertiaryLabel + ":** " + item.Tertiary + "\n")
				}
				b.WriteString("\n")
			}

		case Text:
			writeMarkdownText(b, string(c), titled)

		case Subsections:
			renderMarkdownSections(b, c)

		default:
			// Empty content, or a variant this renderer does not recognize.
			if titled {
				b.WriteString(noContent)
				b.WriteString("\n\n")
			}
		}
	}
}

// writeMarkdownText writes trimmed prose followed by a blank line. Text that
// trims to nothing is treated as an empty section.
func writeMarkdownText(b *strings.Builder, text string, titled bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		if titled {
			b.WriteString(noContent)
			b.WriteString("\n\n")
		}
		return
	}
	b.WriteString(trimmed)
	b.WriteString("\n\n")
}

// headingLevel clamps a section level to a valid heading depth.
func headingLevel(level int) int {
	if level < 1 {
		return 1
	}
	return level
}
