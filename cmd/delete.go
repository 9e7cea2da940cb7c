package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// deleteCmd holds the flags for the 'delete' subcommand.
type deleteCmd struct {
	portfolio string
	yes       bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "liquidate a position" }
func (*deleteCmd) Usage() string {
	return `qm delete [-p <portfolio>] [-y] <code>

  Sells the whole position at its current price and credits cash.
  Asks for confirmation unless -y is given.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.portfolio, "p", "", "Portfolio id, id prefix or name. Defaults to the selected portfolio")
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: delete takes exactly one code")
		return subcommands.ExitUsageError
	}
	code := f.Arg(0)

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
	pos, ok := p.Position(code)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %s is not held in %q\n", code, p.Name)
		return subcommands.ExitFailure
	}

	if !c.yes {
		question := fmt.Sprintf("Sell %v %s %s for %v?", pos.Shares, pos.Code, pos.Name, pos.MarketValue())
		if !confirm(os.Stdin, os.Stdout, question) {
			fmt.Println("Cancelled")
			return subcommands.ExitSuccess
		}
	}

	if err := s.ledger.DeletePosition(id, code); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting %s: %v\n", code, err)
		return subcommands.ExitFailure
	}
	if err := s.save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving portfolios: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Sold %s, cash credited %v\n", code, pos.MarketValue())
	return subcommands.ExitSuccess
}

// confirm asks a yes/no question on w and reads the answer from r.
func confirm(r io.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
