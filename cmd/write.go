package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/williamleo0369-ux/quant-monitor-sub001/knowledge"
)

// writeCmd holds the flags for the 'write' subcommand.
type writeCmd struct {
	id       int
	title    string
	category string
	kind     string
	tags     string
	file     string
	delete   bool
}

func (*writeCmd) Name() string     { return "write" }
func (*writeCmd) Synopsis() string { return "add, edit or delete a knowledge base article" }
func (*writeCmd) Usage() string {
	return `qm write [-id <id>] -title <title> [-category <name>] [-type article|video|link] [-tags a,b] [-file <path>]
qm write -id <id> -delete

  Adds an article, or replaces the article -id. The Markdown content is read
  from -file, or from standard input when -file is "-".
`
}

func (c *writeCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.id, "id", 0, "Article to edit. Adds a new article when 0")
	f.StringVar(&c.title, "title", "", "Article title")
	f.StringVar(&c.category, "category", "", "Article category")
	f.StringVar(&c.kind, "type", "", "Article type: article, video or link. Defaults to article")
	f.StringVar(&c.tags, "tags", "", "Comma separated tags")
	f.StringVar(&c.file, "file", "", "Markdown content file, - for standard input")
	f.BoolVar(&c.delete, "delete", false, "Delete the article -id")
}

func (c *writeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.delete && c.id == 0 {
		fmt.Fprintln(os.Stderr, "Error: -delete requires -id")
		return subcommands.ExitUsageError
	}
	kind, err := knowledge.ParseType(c.kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var content string
	if !c.delete && c.file != "" {
		var b []byte
		if c.file == "-" {
			b, err = io.ReadAll(os.Stdin)
		} else {
			b, err = os.ReadFile(c.file)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading content: %v\n", err)
			return subcommands.ExitFailure
		}
		content = string(b)
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

	a := knowledge.Article{
		ID:       c.id,
		Title:    c.title,
		Category: c.category,
		Type:     kind,
		Tags:     splitTags(c.tags),
		Content:  content,
	}
	var msg string
	switch {
	case c.delete:
		err = kb.Delete(c.id)
		msg = fmt.Sprintf("Deleted article %d", c.id)
	case c.id == 0:
		a, err = kb.Add(a)
		msg = fmt.Sprintf("Added article %d %q", a.ID, a.Title)
	default:
		// flags left empty keep the current values.
		if old, gerr := kb.Get(c.id); gerr == nil {
			a.Starred = old.Starred
			a.Date = old.Date
			if c.title == "" {
				a.Title = old.Title
			}
			if c.category == "" {
				a.Category = old.Category
			}
			if c.kind == "" {
				a.Type = old.Type
			}
			if c.tags == "" {
				a.Tags = old.Tags
			}
			if c.file == "" {
				a.Content = old.Content
			}
		}
		err = kb.Update(a)
		msg = fmt.Sprintf("Updated article %d", c.id)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := kb.Save(s.store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println(msg)
	return subcommands.ExitSuccess
}

// splitTags splits a comma separated list, dropping blanks.
func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
