package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type selectCmd struct{}

func (*selectCmd) Name() string     { return "select" }
func (*selectCmd) Synopsis() string { return "select the portfolio other commands default to" }
func (*selectCmd) Usage() string {
	return `qm select <portfolio>

  Selects a portfolio by id, id prefix or name.
`
}

func (c *selectCmd) SetFlags(f *flag.FlagSet) {}

func (c *selectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: select takes exactly one portfolio")
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	id, err := s.portfolioID(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.ledger.SelectPortfolio(id); err != nil {
		fmt.Fprintf(os.Stderr, "Error selecting portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolios: %v\n", err)
		return subcommands.ExitFailure
	}

	p, _ := s.ledger.Selected()
	fmt.Printf("Selected portfolio %q (%s)\n", p.Name, p.ID)
	return subcommands.ExitSuccess
}
