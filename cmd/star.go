package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"
)

type starCmd struct{}

func (*starCmd) Name() string     { return "star" }
func (*starCmd) Synopsis() string { return "star or unstar an article" }
func (*starCmd) Usage() string {
	return `qm star <id>

  Toggles the starred flag of an article.
`
}

func (c *starCmd) SetFlags(f *flag.FlagSet) {}

func (c *starCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: star takes exactly one article id")
		return subcommands.ExitUsageError
	}
	id, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing article id %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	kb, err := s.knowledge()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	starred, err := kb.ToggleStar(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := kb.Save(s.store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if starred {
		fmt.Printf("Starred article %d\n", id)
	} else {
		fmt.Printf("Unstarred article %d\n", id)
	}
	return subcommands.ExitSuccess
}
