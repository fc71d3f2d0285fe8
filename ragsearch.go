// Package ragsearch provides a local, CLI-based retrieval-augmented search
// pipeline. It combines web search results with a locally indexed corpus,
// synthesizes an answer with a generative model, and aggregates everything
// into Markdown and AsciiDoc reports on disk.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, trafilatura/).
package ragsearch
