package main_test

import (
	"bytes"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/ragsearch/cmd/ragsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	out := stdout.String()
	assert.Contains(t, out, "search")
	assert.Contains(t, out, "index")
	assert.Contains(t, out, "docs")
	assert.Contains(t, out, "version")
}

func TestCLI_ParseSearch(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"search", "how does WAL work", "--query-id", "q1", "--top-k", "5", "--web"})
	require.NoError(t, err)

	assert.Equal(t, "how does WAL work", cli.Search.Query)
	assert.Equal(t, "q1", cli.Search.QueryID)
	assert.Equal(t, 5, cli.Search.TopK)
	assert.True(t, cli.Search.Web)
}

func TestCLI_MaxDepthDefaultsToUnset(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"search", "q"})
	require.NoError(t, err)

	assert.Equal(t, -1, cli.Search.MaxDepth)
}

func TestCLI_ParseSearchMissingQuery(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"search"})
	assert.Error(t, err)
}
