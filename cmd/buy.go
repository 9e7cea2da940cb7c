package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	portfolio "github.com/williamleo0369-ux/quant-monitor-sub001"
)

// buyCmd holds the flags for the 'buy' subcommand.
type buyCmd struct {
	portfolio string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares of an instrument" }
func (*buyCmd) Usage() string {
	return `qm buy [-p <portfolio>] <code> <shares> [<price>]

  Buys shares of an instrument, debiting cash. The price defaults to the
  instrument's reference price. Buying a held instrument averages its cost.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id, id prefix or name. Defaults to the selected portfolio")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 || f.NArg() > 3 {
		fmt.Fprintln(os.Stderr, "Error: buy takes a code, a number of shares and an optional price")
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

	var price portfolio.Money
	if f.NArg() == 3 {
		price, err = portfolio.ParseMoney(f.Arg(2), s.ledger.Currency())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing price %q: %v\n", f.Arg(2), err)
			return subcommands.ExitUsageError
		}
	} else {
		inst, ok := portfolio.DefaultCatalog().Instrument(code)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown instrument %q, see 'qm search'\n", code)
			return subcommands.ExitFailure
		}
		price = inst.Price
	}

	id, err := s.portfolioID(c.portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.ledger.Buy(id, code, price, shares); err != nil {
		fmt.Fprintf(os.Stderr, "Error buying %s: %v\n", code, err)
		return subcommands.ExitFailure
	}
	if err := s.save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolios: %v\n", err)
		return subcommands.ExitFailure
	}

	p, _ := s.ledger.Portfolio(id)
	fmt.Printf("Bought %v %s at %v, cash left %v\n", shares, code, price, p.Cash)
	return subcommands.ExitSuccess
}
