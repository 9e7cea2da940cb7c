package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	portfolio "github.com/williamleo0369-ux/quant-monitor-sub001"
)

// resizeCmd holds the flags for the 'resize' subcommand.
type resizeCmd struct {
	portfolio string
}

func (*resizeCmd) Name() string     { return "resize" }
func (*resizeCmd) Synopsis() string { return "change the number of shares of a position" }
func (*resizeCmd) Usage() string {
	return `qm resize [-p <portfolio>] <code> <shares>

  Sets the number of shares held. The difference is settled in cash at the
  current price; resizing to 0 closes the position.
`
}

func (c *resizeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id, id prefix or name. Defaults to the selected portfolio")
}

func (c *resizeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: resize takes a code and a number of shares")
		return subcommands.ExitUsageError
	}
	code := f.Arg(0)
	shares, err := portfolio.ParseQuantity(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing shares %q: %v\n", f.Arg(1), err)
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
	if err := s.ledger.ResizeShares(id, code, shares); err != nil {
		fmt.Fprintf(os.Stderr, "Error resizing %s: %v\n", code, err)
		return subcommands.ExitFailure
	}
	if err := s.save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolios: %v\n", err)
		return subcommands.ExitFailure
	}

	p, _ := s.ledger.Portfolio(id)
	fmt.Printf("Resized %s to %v shares, cash %v\n", code, shares, p.Cash)
	return subcommands.ExitSuccess
}
