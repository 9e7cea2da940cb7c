package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/williamleo0369-ux/quant-monitor-sub001/renderer"
)

// refreshCmd holds the flags for the 'refresh' subcommand.
type refreshCmd struct {
	portfolio string
	all       bool
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "simulate a price update" }
func (*refreshCmd) Usage() string {
	return `qm refresh [-p <portfolio> | -all]

  Moves the current price of every position randomly by at most 0.5% and
  draws a new daily performance.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id, id prefix or name. Defaults to the selected portfolio")
	f.BoolVar(&c.all, "all", false, "Refresh every portfolio")
}

func (c *refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	var ids []string
	if !c.all {
		id, err := s.portfolioID(c.portfolio)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		ids = append(ids, id)
	}

	if d := s.cfg.RefreshDelay; d > 0 {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			fmt.Fprintf(os.Stderr, "Error: %v\n", ctx.Err())
			return subcommands.ExitFailure
		case <-t.C:
		}
	}

	if err := s.ledger.RefreshPrices(ids...); err != nil {
		fmt.Fprintf(os.Stderr, "Error refreshing prices: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolios: %v\n", err)
		return subcommands.ExitFailure
	}

	if len(ids) == 1 {
		sum, err := s.ledger.Summary(ids[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.RenderSummary(sum))
		return subcommands.ExitSuccess
	}
	fmt.Printf("Refreshed %d portfolios\n", s.ledger.Len())
	return subcommands.ExitSuccess
}
