package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	portfolio "github.com/williamleo0369-ux/quant-monitor-sub001"
	"github.com/williamleo0369-ux/quant-monitor-sub001/renderer"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list portfolios" }
func (*listCmd) Usage() string {
	return `qm list

  Lists every portfolio with its headline figures. The selected portfolio is marked.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	var summaries []portfolio.Summary
	for p := range s.ledger.Portfolios() {
		summaries = append(summaries, portfolio.NewSummary(p))
	}
	printMarkdown(renderer.RenderPortfolios(summaries, s.ledger.SelectedID()))
	return subcommands.ExitSuccess
}
