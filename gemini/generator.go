// Package gemini implements query enhancement, expansion, and answer
// synthesis using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/ragsearch"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultContextTokens caps the token budget for synthesis context.
const DefaultContextTokens = 100000

// Ensure Generator implements ragsearch.Generator at compile time.
var _ ragsearch.Generator = (*Generator)(nil)

// Generator implements ragsearch.Generator using Google Gemini.
type Generator struct {
	client  *genai.Client
	model   string
	counter ragsearch.TokenCounter
	budget  int
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithModel overrides the default model.
func WithModel(model string) GeneratorOption {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithTokenCounter enables token-budgeted context trimming during synthesis.
func WithTokenCounter(counter ragsearch.TokenCounter, budget int) GeneratorOption {
	return func(g *Generator) {
		g.counter = counter
		if budget > 0 {
			g.budget = budget
		}
	}
}

// NewGenerator creates a new Generator.
func NewGenerator(client *genai.Client, opts ...GeneratorOption) *Generator {
	g := &Generator{client: client, model: DefaultModel, budget: DefaultContextTokens}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// EnhanceQuery rewrites the user query for better retrieval.
func (g *Generator) EnhanceQuery(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", ragsearch.Errorf(ragsearch.EINVALID, "query required")
	}

	text, err := g.generate(ctx, BuildEnhancePrompt(query), enhanceConfig())
	if err != nil {
		return "", err
	}

	enhanced := strings.TrimSpace(text)
	if enhanced == "" {
		return query, nil
	}
	return enhanced, nil
}

// ExpandQuery proposes follow-up subqueries for depth-limited expansion.
func (g *Generator) ExpandQuery(ctx context.Context, query string) ([]string, error) {
	if query == "" {
		return nil, ragsearch.Errorf(ragsearch.EINVALID, "query required")
	}

	text, err := g.generate(ctx, BuildExpandPrompt(query), enhanceConfig())
	if err != nil {
		return nil, err
	}

	return ParseSubqueries(text), nil
}

// Synthesize produces the final answer from the query and gathered context.
func (g *Generator) Synthesize(ctx context.Context, query string, web []ragsearch.WebResult, local []ragsearch.LocalResult) (string, error) {
	if query == "" {
		return "", ragsearch.Errorf(ragsearch.EINVALID, "query required")
	}

	web, local, err := g.fitContext(ctx, web, local)
	if err != nil {
		return "", err
	}

	text, err := g.generate(ctx, BuildSynthesisPrompt(query, web, local), synthesisConfig())
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

func (g *Generator) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", ragsearch.Errorf(ragsearch.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

// fitContext drops trailing context entries until the synthesis prompt fits
// the token budget. Local results are kept in preference to web results.
func (g *Generator) fitContext(ctx context.Context, web []ragsearch.WebResult, local []ragsearch.LocalResult) ([]ragsearch.WebResult, []ragsearch.LocalResult, error) {
	if g.counter == nil || g.budget <= 0 {
		return web, local, nil
	}

	for {
		count, err := g.counter.CountTokens(ctx, BuildSynthesisPrompt("", web, local))
		if err != nil {
			return nil, nil, err
		}
		if count <= g.budget {
			return web, local, nil
		}
		switch {
		case len(web) > 0:
			web = web[:len(web)-1]
		case len(local) > 0:
			local = local[:len(local)-1]
		default:
			return web, local, nil
		}
	}
}

func enhanceConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{Temperature: &temp}
}

func synthesisConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a research assistant. Answer the question using only the provided web and local context. Cite sources by URL or file path where relevant. If the context does not contain the answer, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildEnhancePrompt builds the query rewriting prompt.
func BuildEnhancePrompt(query string) string {
	var sb strings.Builder
	sb.WriteString("Rewrite the following search query to be more specific and effective for retrieval. ")
	sb.WriteString("Return only the rewritten query, nothing else.\n\n")
	fmt.Fprintf(&sb, "Query: %s", query)
	return sb.String()
}

// BuildExpandPrompt builds the subquery expansion prompt.
func BuildExpandPrompt(query string) string {
	var sb strings.Builder
	sb.WriteString("Propose up to 3 follow-up search queries that would help answer the question below. ")
	sb.WriteString("Return one query per line with no numbering or bullets.\n\n")
	fmt.Fprintf(&sb, "Question: %s", query)
	return sb.String()
}

// BuildSynthesisPrompt builds the user prompt containing gathered context
// and the question.
func BuildSynthesisPrompt(query string, web []ragsearch.WebResult, local []ragsearch.LocalResult) string {
	var sb strings.Builder
	sb.WriteString("<web_results>\n")
	for i, r := range web {
		sb.WriteString("<result>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<url>%s</url>\n", r.URL)
		fmt.Fprintf(&sb, "<snippet>%s</snippet>\n", r.Snippet)
		sb.WriteString("</result>\n")
	}
	sb.WriteString("</web_results>\n")
	sb.WriteString("<local_results>\n")
	for i, r := range local {
		sb.WriteString("<result>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<file>%s</file>\n", r.FilePath)
		if r.Page > 0 {
			fmt.Fprintf(&sb, "<page>%d</page>\n", r.Page)
		}
		fmt.Fprintf(&sb, "<snippet>%s</snippet>\n", r.Snippet)
		sb.WriteString("</result>\n")
	}
	sb.WriteString("</local_results>\n\n")
	fmt.Fprintf(&sb, "Question: %s", query)
	return sb.String()
}

// ParseSubqueries extracts subqueries from a model response, one per line.
// Bullets and numbering are stripped and blank lines skipped.
func ParseSubqueries(text string) []string {
	var queries []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*0123456789.) ")
		if line == "" {
			continue
		}
		queries = append(queries, line)
	}
	return queries
}
