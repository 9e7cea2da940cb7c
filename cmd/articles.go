package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/williamleo0369-ux/quant-monitor-sub001/knowledge"
	"github.com/williamleo0369-ux/quant-monitor-sub001/renderer"
)

// articlesCmd holds the flags for the 'articles' subcommand.
type articlesCmd struct {
	category string
	starred  bool
}

func (*articlesCmd) Name() string     { return "articles" }
func (*articlesCmd) Synopsis() string { return "list knowledge base articles" }
func (*articlesCmd) Usage() string {
	return `qm articles [-category <name>] [-starred] [<search>]

  Lists the articles, newest first, with the categories and the recently read
  articles. The search text matches titles, categories and tags.
`
}

func (c *articlesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "category", knowledge.AllCategories, "Only list articles of this category")
	f.BoolVar(&c.starred, "starred", false, "Only list starred articles")
}

func (c *articlesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	articles := kb.List(knowledge.Query{
		Category:    c.category,
		Search:      strings.Join(f.Args(), " "),
		StarredOnly: c.starred,
	})
	printMarkdown(renderer.RenderArticles(kb.Categories(), articles, kb.Recent()))
	return subcommands.ExitSuccess
}
