package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	portfolio "github.com/williamleo0369-ux/quant-monitor-sub001"
)

// cashCmd holds the flags for the 'cash' subcommand.
type cashCmd struct {
	portfolio string
}

func (*cashCmd) Name() string     { return "cash" }
func (*cashCmd) Synopsis() string { return "set the cash balance of a portfolio" }
func (*cashCmd) Usage() string {
	return `qm cash [-p <portfolio>] <amount>

  Replaces the cash balance. Positions are left untouched.
`
}

func (c *cashCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id, id prefix or name. Defaults to the selected portfolio")
}

func (c *cashCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: cash takes exactly one amount")
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	amount, err := portfolio.ParseMoney(f.Arg(0), s.ledger.Currency())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}
	id, err := s.portfolioID(c.portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.ledger.SetCash(id, amount); err != nil {
		fmt.Fprintf(os.Stderr, "Error setting cash: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolios: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Cash set to %v\n", amount)
	return subcommands.ExitSuccess
}
