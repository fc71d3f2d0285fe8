package main

import (
	"fmt"

	"github.com/fwojciec/ragsearch"
	"github.com/google/uuid"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	queryID := c.QueryID
	if queryID == "" {
		queryID = uuid.New().String()[:8]
	}

	res, err := deps.Session.Run(deps.Ctx, queryID, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ragsearch.ErrorMessage(err))
		return err
	}

	answer, full := ragsearch.BuildReports(res)

	path, err := deps.Writer.Write(deps.Ctx, queryID, answer, full)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ragsearch.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, res.FinalAnswer)
	fmt.Fprintf(deps.Stdout, "\nReport written to %s\n", path)
	return nil
}
