package main

import (
	"context"
	"io"

	"github.com/fwojciec/ragsearch"
	"github.com/fwojciec/ragsearch/pdf"
	"github.com/fwojciec/ragsearch/session"
	"github.com/fwojciec/ragsearch/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *ragsearch.Config
	DB        *sqlite.DB
	Documents ragsearch.DocumentService
	Retriever ragsearch.Retriever
	Session   *session.Session
	Writer    ragsearch.ReportWriter
	PDF       *pdf.Parser
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"c" help:"Config file path" type:"path"`
	Debug  bool   `help:"Log pipeline operations to stderr"`

	Search  SearchCmd  `cmd:"" help:"Run a search session and write reports"`
	Index   IndexCmd   `cmd:"" help:"Index a directory of documents into the local corpus"`
	Docs    DocsCmd    `cmd:"" help:"List indexed corpus documents"`
	Version VersionCmd `cmd:"" help:"Print version"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   string `arg:"" help:"Search query"`
	QueryID string `short:"q" help:"Query identifier used in output paths (defaults to a generated ID)"`
	TopK    int    `short:"k" help:"Number of local documents to retrieve"`
	// MaxDepth -1 means "not set" so 0 can disable expansion explicitly.
	MaxDepth int  `short:"d" default:"-1" help:"Subquery expansion depth"`
	Web      bool `short:"w" help:"Enable the web search step"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Dir     string `arg:"" help:"Directory to index (.md, .txt, and .pdf files)" type:"existingdir"`
	Reindex bool   `short:"r" help:"Replace existing documents for re-encountered files"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Full bool `help:"Show full document content"`
}

// VersionCmd is the "version" subcommand.
type VersionCmd struct{}
