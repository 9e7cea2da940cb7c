package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/williamleo0369-ux/quant-monitor-sub001/renderer"
)

// allocationCmd holds the flags for the 'allocation' subcommand.
type allocationCmd struct {
	portfolio string
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "display the sector allocation of a portfolio" }
func (*allocationCmd) Usage() string {
	return `qm allocation [-p <portfolio>]

  Displays the market value per sector, cash included, largest first.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id, id prefix or name. Defaults to the selected portfolio")
}

func (c *allocationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	p, err := s.ledger.Portfolio(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	slices, err := s.ledger.AllocationView(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating allocation: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderAllocation(p.Name, slices))
	return subcommands.ExitSuccess
}
