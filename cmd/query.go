package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	json "github.com/goccy/go-json"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression over a stored key" }
func (*queryCmd) Usage() string {
	return `qm query <key> [<jsonpath>]

  Prints the JSON value stored under key, or the result of a JSONPath
  expression evaluated on it. For example:

    qm query quant_portfolios '$[*].name'
    qm query knowledgeBaseData '$.articles[?(@.starred)].title'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 || f.NArg() > 2 {
		fmt.Fprintln(os.Stderr, "Error: query takes a key and an optional JSONPath expression")
		return subcommands.ExitUsageError
	}
	key, path := f.Arg(0), "$"
	if f.NArg() == 2 {
		path = f.Arg(1)
	}

	s, err := openSession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	raw, ok, err := s.store.Get(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", key, err)
		return subcommands.ExitFailure
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: key %q not found\n", key)
		return subcommands.ExitFailure
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		// not every value is a JSON document, e.g. the selected portfolio id.
		doc = raw
	}
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating %q: %v\n", path, err)
		return subcommands.ExitFailure
	}

	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}
