// Package cmd implements the qm commands managing simulated portfolios and the
// knowledge base.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	portfolio "github.com/williamleo0369-ux/quant-monitor-sub001"
	"github.com/williamleo0369-ux/quant-monitor-sub001/config"
	"github.com/williamleo0369-ux/quant-monitor-sub001/knowledge"
	"github.com/williamleo0369-ux/quant-monitor-sub001/kv"
	"github.com/williamleo0369-ux/quant-monitor-sub001/logger"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&createCmd{}, "portfolios")
	c.Register(&listCmd{}, "portfolios")
	c.Register(&selectCmd{}, "portfolios")
	c.Register(&renameCmd{}, "portfolios")
	c.Register(&cashCmd{}, "portfolios")

	c.Register(&buyCmd{}, "positions")
	c.Register(&resizeCmd{}, "positions")
	c.Register(&deleteCmd{}, "positions")
	c.Register(&refreshCmd{}, "positions")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&holdingsCmd{}, "reports")
	c.Register(&allocationCmd{}, "reports")
	c.Register(&performanceCmd{}, "reports")
	c.Register(&searchCmd{}, "reports")

	c.Register(&articlesCmd{}, "knowledge")
	c.Register(&readCmd{}, "knowledge")
	c.Register(&writeCmd{}, "knowledge")
	c.Register(&starCmd{}, "knowledge")

	c.Register(&queryCmd{}, "help")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile  = flag.String("config", "", "Path to the configuration file")
	dataDir     = flag.String("data-dir", "", "Directory of the store, overrides the configuration")
	storeDriver = flag.String("store", "", "Store driver: file, sqlite, sqlite3 or memory")
	logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error or disabled")
	seed        = flag.Uint64("seed", 0, "Market simulation seed, 0 is time-based")
	raw         = flag.Bool("raw", false, "Print plain Markdown instead of styling it for the terminal")
)

var loadConfig = sync.OnceValues(func() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	err = cfg.Override(config.Overrides{
		DataDir:     *dataDir,
		StoreDriver: *storeDriver,
		LogLevel:    *logLevel,
		Seed:        *seed,
		Raw:         *raw,
	})
	return cfg, err
})

// session is the state a command works on: the store, the ledger loaded
// from it and, on demand, the knowledge base.
type session struct {
	cfg     *config.Config
	log     zerolog.Logger
	store   kv.StoreCloser
	ledger  *portfolio.Ledger
	ledgers *portfolio.LedgerStore
}

// openSession opens the configured store and loads the ledger.
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	if cfg.StoreDriver != kv.DriverMemory {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	store, err := kv.Open(cfg.StoreDriver, cfg.Store())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	ledger := portfolio.NewLedger(portfolio.DefaultCatalog(),
		portfolio.WithLogger(log),
		portfolio.WithRand(portfolio.NewRand(cfg.Seed)),
		portfolio.WithCurrency(cfg.Currency),
	)
	ledgers := portfolio.NewLedgerStore(store, log)
	if err := ledgers.Load(ledger); err != nil {
		store.Close()
		return nil, err
	}
	log.Debug().Str("driver", cfg.StoreDriver).Str("path", cfg.Store()).Int("portfolios", ledger.Len()).Msg("session opened")
	return &session{cfg: cfg, log: log, store: store, ledger: ledger, ledgers: ledgers}, nil
}

func (s *session) save() error { return s.ledgers.Save(s.ledger) }

func (s *session) close() {
	if err := s.store.Close(); err != nil {
		s.log.Error().Err(err).Msg("closing store")
	}
}

// knowledge loads the knowledge base from the session store.
func (s *session) knowledge() (*knowledge.Base, error) {
	return knowledge.Load(s.store, knowledge.WithLogger(s.log))
}

// portfolioID resolves a portfolio reference given on the command line: an
// id, a unique id prefix or a unique name. An empty reference is the
// selected portfolio.
func (s *session) portfolioID(ref string) (string, error) {
	if ref == "" {
		if id := s.ledger.SelectedID(); id != "" {
			return id, nil
		}
		return "", fmt.Errorf("%w: no portfolio selected", portfolio.ErrNotFound)
	}
	var byName, byPrefix []string
	for p := range s.ledger.Portfolios() {
		switch {
		case p.ID == ref:
			return p.ID, nil
		case p.Name == ref:
			byName = append(byName, p.ID)
		case strings.HasPrefix(p.ID, ref):
			byPrefix = append(byPrefix, p.ID)
		}
	}
	for _, ids := range [][]string{byName, byPrefix} {
		switch len(ids) {
		case 0:
		case 1:
			return ids[0], nil
		default:
			return "", fmt.Errorf("%w: %q matches %d portfolios", portfolio.ErrInvalidInput, ref, len(ids))
		}
	}
	return "", fmt.Errorf("%w: %q", portfolio.ErrNotFound, ref)
}

// printMarkdown prints md styled for the terminal, or as is in raw mode.
func printMarkdown(md string) {
	cfg, err := loadConfig()
	if err == nil && !cfg.Raw {
		if out, err := glamour.RenderWithEnvironmentConfig(md); err == nil {
			md = out
		}
	}
	fmt.Print(md)
}
