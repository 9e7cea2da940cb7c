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

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	portfolio string
	filter    string
	sort      string
	order     string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the positions of a portfolio" }
func (*holdingsCmd) Usage() string {
	return `qm holdings [-p <portfolio>] [-filter <text>] [-sort weight|profit|name] [-order desc|asc]

  Displays the positions with their market value, profit and weight, and the cash.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id, id prefix or name. Defaults to the selected portfolio")
	f.StringVar(&c.filter, "filter", "", "Only show positions whose name, code or sector contains this text")
	f.StringVar(&c.sort, "sort", "weight", "Sort field: weight, profit or name")
	f.StringVar(&c.order, "order", "desc", "Sort order: desc or asc")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	field, err := portfolio.ParseSortField(c.sort)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	order, err := portfolio.ParseSortOrder(c.order)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	id, err := s.portfolioID(c.portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	sum, err := s.ledger.Summary(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating summary: %v\n", err)
		return subcommands.ExitFailure
	}
	h, err := s.ledger.HoldingsView(id, portfolio.HoldingsQuery{Filter: c.filter, SortField: field, SortOrder: order})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating holdings: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderHoldings(sum, h))
	return subcommands.ExitSuccess
}
