package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ragsearch"
	"github.com/fwojciec/ragsearch/bloom"
	"github.com/fwojciec/ragsearch/fs"
	"github.com/fwojciec/ragsearch/gemini"
	"github.com/fwojciec/ragsearch/htmltomarkdown"
	raghttp "github.com/fwojciec/ragsearch/http"
	"github.com/fwojciec/ragsearch/pdf"
	"github.com/fwojciec/ragsearch/readability"
	"github.com/fwojciec/ragsearch/session"
	ragslog "github.com/fwojciec/ragsearch/slog"
	"github.com/fwojciec/ragsearch/sqlite"
	"github.com/fwojciec/ragsearch/trafilatura"
	ragviper "github.com/fwojciec/ragsearch/viper"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DocumentService ragsearch.DocumentService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ragsearch"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ragsearch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cmd == "version" {
		return kongCtx.Run(deps)
	}

	cfg, err := ragviper.Load(cli.Config)
	if err != nil {
		return err
	}
	applyFlags(cfg, cli, cmd)
	deps.Config = cfg

	if cfg.DBPath != "" {
		m.DBPath = cfg.DBPath
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set db_path in the config file to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.DocumentService = sqlite.NewDocumentService(m.DB)
	deps.DB = m.DB
	deps.Documents = m.DocumentService
	deps.Retriever = sqlite.NewRetriever(m.DB)

	if cmd == "index" {
		deps.PDF = &pdf.Parser{}
	}

	if cmd == "search" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		generator := gemini.NewGenerator(client, gemini.WithModel(cfg.Model))
		if counter, err := gemini.NewTokenCounter(tokenizerModel); err == nil {
			generator = gemini.NewGenerator(client,
				gemini.WithModel(cfg.Model),
				gemini.WithTokenCounter(counter, gemini.DefaultContextTokens),
			)
		}

		pagesDir := cfg.PagesDir
		if pagesDir == "" {
			pagesDir = filepath.Join(cfg.ResultsBaseDir, "pages")
		}

		var searcher ragsearch.WebSearcher = raghttp.NewSearcher()
		var retriever ragsearch.Retriever = deps.Retriever
		if cli.Debug {
			logger := slog.New(slog.NewTextHandler(stderr, nil))
			searcher = ragslog.NewLoggingSearcher(searcher, logger)
			retriever = ragslog.NewLoggingRetriever(retriever, logger)
		}

		deps.Session = &session.Session{
			Progress: progressPrinter(stderr),
			Searcher: searcher,
			Downloader: &raghttp.Downloader{
				Dir:       pagesDir,
				Extractor: newExtractor(cfg.Extractor),
				Converter: htmltomarkdown.NewConverter(),
				Limiter:   session.NewDomainLimiter(1.0),
			},
			Retriever: retriever,
			Generator: generator,
			Seen:      bloom.NewFilter(seenFilterSize, seenFilterFalsePositiveRate),
			TopK:      cfg.TopK,
			MaxDepth:  cfg.MaxDepth,
			Limit:     cfg.SearchLimit,
			WebSearch: cfg.WebSearch,
		}
		deps.Writer = fs.NewWriter(cfg.ResultsBaseDir)
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for token counting. The local tokenizer only ships
// vocabularies for a subset of models.
const tokenizerModel = "gemini-2.5-flash"

// Seen filter sizing for URL and subquery deduplication.
const (
	seenFilterSize              = 10000
	seenFilterFalsePositiveRate = 0.01
)

// applyFlags overlays command-line flags on the loaded configuration.
func applyFlags(cfg *ragsearch.Config, cli *CLI, cmd string) {
	if cmd != "search" {
		return
	}
	if cli.Search.TopK > 0 {
		cfg.TopK = cli.Search.TopK
	}
	if cli.Search.MaxDepth >= 0 {
		cfg.MaxDepth = cli.Search.MaxDepth
	}
	if cli.Search.Web {
		cfg.WebSearch = true
	}
}

// progressPrinter writes one status line per pipeline phase.
func progressPrinter(w io.Writer) session.ProgressFunc {
	return func(e session.ProgressEvent) {
		switch e.Step {
		case session.StepEnhance:
			fmt.Fprintln(w, "Enhancing query...")
		case session.StepSearch:
			fmt.Fprintf(w, "Searching the web for %q...\n", e.Detail)
		case session.StepDownload:
			fmt.Fprintln(w, "Downloading result pages...")
		case session.StepRetrieve:
			fmt.Fprintln(w, "Retrieving local documents...")
		case session.StepSynthesize:
			fmt.Fprintln(w, "Synthesizing answer...")
		}
	}
}

func newExtractor(name string) ragsearch.Extractor {
	if name == "readability" {
		return readability.NewExtractor()
	}
	return trafilatura.NewExtractor()
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ragsearch.db"
	}
	dir := filepath.Join(home, ".ragsearch")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "ragsearch.db")
}
