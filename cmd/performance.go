package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	portfolio "github.com/williamleo0369-ux/quant-monitor-sub001"
	"github.com/williamleo0369-ux/quant-monitor-sub001/date"
	"github.com/williamleo0369-ux/quant-monitor-sub001/renderer"
)

// performanceCmd holds the flags for the 'performance' subcommand.
type performanceCmd struct {
	days int
	end  string
}

func (*performanceCmd) Name() string     { return "performance" }
func (*performanceCmd) Synopsis() string { return "display a simulated net value series" }
func (*performanceCmd) Usage() string {
	return `qm performance [-days <n>] [-d <date>]

  Displays a simulated portfolio and benchmark net value series ending on a
  date, with its return, volatility and maximum drawdown.
`
}

func (c *performanceCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 30, "Number of days in the series")
	f.StringVar(&c.end, "d", date.Today().String(), "Last day of the series")
}

func (c *performanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.days < 1 {
		fmt.Fprintf(os.Stderr, "Error: -days must be positive, got %d\n", c.days)
		return subcommands.ExitUsageError
	}
	end, err := date.Parse(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	days := date.Range{From: end.Add(1 - c.days), To: end}
	points := portfolio.NetValueSeries(portfolio.NewRand(cfg.Seed), days)
	printMarkdown(renderer.RenderPerformance(points))
	return subcommands.ExitSuccess
}
