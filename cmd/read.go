package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"

	"github.com/williamleo0369-ux/quant-monitor-sub001/renderer"
)

// readCmd holds the flags for the 'read' subcommand.
type readCmd struct {
	html bool
}

func (*readCmd) Name() string     { return "read" }
func (*readCmd) Synopsis() string { return "read a knowledge base article" }
func (*readCmd) Usage() string {
	return `qm read [-html] <id>

  Displays an article. Reading counts a view and records the article as
  recently read.
`
}

func (c *readCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.html, "html", false, "Print the article content rendered as HTML")
}

func (c *readCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: read takes exactly one article id")
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
	a, err := kb.View(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading article: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := kb.Save(s.store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.html {
		fmt.Print(a.HTML)
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.RenderArticle(a.Article))
	return subcommands.ExitSuccess
}
