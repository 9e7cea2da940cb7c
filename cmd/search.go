package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/google/subcommands"

	portfolio "github.com/williamleo0369-ux/quant-monitor-sub001"
	"github.com/williamleo0369-ux/quant-monitor-sub001/renderer"
)

type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search the instrument reference" }
func (*searchCmd) Usage() string {
	return `qm search [<text>]

  Lists the instruments whose code or name contains the text, all of them
  without text.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	catalog := portfolio.DefaultCatalog()

	var found []portfolio.Instrument
	if query := strings.Join(f.Args(), " "); query != "" {
		found = catalog.Search(query)
	} else {
		found = slices.Collect(catalog.All())
	}

	if len(found) == 0 {
		fmt.Fprintln(os.Stderr, "No instrument found")
	}
	printMarkdown(renderer.RenderInstruments(found))
	return subcommands.ExitSuccess
}
