package ragsearch

// Default configuration values. Missing or malformed configuration falls
// back to these rather than failing.
const (
	DefaultResultsBaseDir = "results"
	DefaultTopK           = 3
	DefaultMaxDepth       = 1
	DefaultSearchLimit    = 10
	DefaultExtractor      = "trafilatura"
)

// Config holds pipeline configuration. Zero values are replaced with the
// documented defaults by the loader.
type Config struct {
	// ResultsBaseDir is the base directory for report output.
	ResultsBaseDir string `mapstructure:"results_base_dir"`

	// PagesDir is where downloaded web pages are saved.
	PagesDir string `mapstructure:"pages_dir"`

	// DBPath is the corpus database path.
	DBPath string `mapstructure:"db_path"`

	// TopK is the number of local documents to retrieve.
	TopK int `mapstructure:"top_k"`

	// MaxDepth limits subquery expansion rounds.
	MaxDepth int `mapstructure:"max_depth"`

	// WebSearch enables the web search step.
	WebSearch bool `mapstructure:"web_search"`

	// SearchLimit caps the number of web results per search.
	SearchLimit int `mapstructure:"search_limit"`

	// Model is the generative model used for enhancement and synthesis.
	Model string `mapstructure:"model"`

	// Extractor selects the content extractor for downloaded pages:
	// "trafilatura" or "readability".
	Extractor string `mapstructure:"extractor"`
}
