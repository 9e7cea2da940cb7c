package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	portfolio "github.com/williamleo0369-ux/quant-monitor-sub001"
)

// createCmd holds the flags for the 'create' subcommand.
type createCmd struct {
	cash string
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "create a portfolio and select it" }
func (*createCmd) Usage() string {
	return `qm create [-cash <amount>] <name>

  Creates a portfolio holding only cash and makes it the selected portfolio.
`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.cash, "cash", "100000", "Initial cash balance")
}

func (c *createCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.Join(f.Args(), " ")
	if strings.TrimSpace(name) == "" {
		fmt.Fprintln(os.Stderr, "Error: a portfolio name is required")
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	cash, err := portfolio.ParseMoney(c.cash, s.ledger.Currency())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing cash %q: %v\n", c.cash, err)
		return subcommands.ExitUsageError
	}

	p, err := s.ledger.CreatePortfolio(name, cash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolios: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created portfolio %q (%s) with %v\n", p.Name, p.ID, p.Cash)
	return subcommands.ExitSuccess
}
