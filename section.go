package ragsearch

// Report is an ordered sequence of sections. Order is rendering order.
type Report []Section

// Section is one titled, leveled unit of a report. Content is nil for
// header-only sections.
type Section struct {
	Level   int     `json:"level"`
	Title   string  `json:"title"`
	Content Content `json:"content,omitempty"`
}

// Content is the section content variant. It is a closed set: Text, ItemList,
// ItemGroup and Subsections implement it, and a nil Content means an empty
// section. Renderers dispatch exhaustively on the variant.
type Content interface {
	content()
}

// Text is a single block of prose. Surrounding whitespace is trimmed before
// rendering; text that is empty after trimming renders like an empty section.
type Text string

// ItemList is an ordered sequence of plain bullet items.
type ItemList []string

// Item is one record in an ItemGroup. Secondary and Tertiary are optional;
// an empty string means the field is absent.
type Item struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
	Tertiary  string `json:"tertiary,omitempty"`
}

// ItemGroup holds labeled multi-field records with per-field display
// captions. When Entries is empty the group degrades to its Placeholder
// string (used when an upstream result set is empty); the two forms are
// distinct and neither is plain Text.
type ItemGroup struct {
	Label          string `json:"label"`
	SecondaryLabel string `json:"secondaryLabel,omitempty"`
	TertiaryLabel  string `json:"tertiaryLabel,omitempty"`
	Entries        []Item `json:"entries,omitempty"`
	Placeholder    string `json:"placeholder,omitempty"`
}

// Subsections is a nested sub-report, rendered recursively in place.
type Subsections []Section

func (Text) content()        {}
func (ItemList) content()    {}
func (ItemGroup) content()   {}
func (Subsections) content() {}

// titleIndex returns the index of the section that serves as the report
// title: the first top-level section with Level == 1 and a non-empty title.
// Returns -1 if the report has no title section.
func (r Report) titleIndex() int {
	for i, s := range r {
		if s.Level == 1 && s.Title != "" {
			return i
		}
	}
	return -1
}
