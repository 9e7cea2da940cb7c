package portfolio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/williamleo0369-ux/quant-monitor-sub001/kv"
)

// Storage keys of the ledger state.
const (
	KeyPortfolios        = "quant_portfolios"         // JSON array of portfolios
	KeySelectedPortfolio = "quant_selected_portfolio" // bare portfolio id
)

// LedgerStore loads and saves a Ledger through a key-value store.
type LedgerStore struct {
	store kv.Store
	log   zerolog.Logger
}

// NewLedgerStore returns a LedgerStore backed by store.
func NewLedgerStore(store kv.Store, log zerolog.Logger) *LedgerStore {
	return &LedgerStore{store: store, log: log.With().Str("module", "store").Logger()}
}

// Load replaces the state of l with the stored one. Missing keys yield an
// empty ledger. On error l is left untouched.
func (s *LedgerStore) Load(l *Ledger) error {
	var portfolios []Portfolio
	if _, err := kv.GetJSON(s.store, KeyPortfolios, &portfolios); err != nil {
		return fmt.Errorf("loading %s: %w", KeyPortfolios, err)
	}
	if err := validatePortfolios(portfolios); err != nil {
		return fmt.Errorf("loading %s: %w", KeyPortfolios, err)
	}
	selected, _, err := s.store.Get(KeySelectedPortfolio)
	if err != nil {
		return fmt.Errorf("loading %s: %w", KeySelectedPortfolio, err)
	}
	selected = strings.TrimSpace(selected)
	if unquoted, err := strconv.Unquote(selected); err == nil {
		selected = unquoted
	}
	l.replace(portfolios, selected)
	s.log.Debug().Int("portfolios", len(portfolios)).Str("selected", l.selected).Msg("ledger loaded")
	return nil
}

// Save writes the state of l. The selection key is removed when nothing is selected.
func (s *LedgerStore) Save(l *Ledger) error {
	portfolios := make([]Portfolio, 0, l.Len())
	for p := range l.Portfolios() {
		portfolios = append(portfolios, p)
	}
	if err := kv.SetJSON(s.store, KeyPortfolios, portfolios); err != nil {
		return fmt.Errorf("saving %s: %w", KeyPortfolios, err)
	}
	var err error
	if l.selected == "" {
		err = s.store.Remove(KeySelectedPortfolio)
	} else {
		err = s.store.Set(KeySelectedPortfolio, l.selected)
	}
	if err != nil {
		return fmt.Errorf("saving %s: %w", KeySelectedPortfolio, err)
	}
	s.log.Debug().Int("portfolios", len(portfolios)).Str("selected", l.selected).Msg("ledger saved")
	return nil
}

// validatePortfolios checks stored portfolios against the ledger invariants.
func validatePortfolios(portfolios []Portfolio) error {
	ids := make(map[string]bool, len(portfolios))
	for i, p := range portfolios {
		if p.ID == "" {
			return fmt.Errorf("%w: portfolio #%d has no id", ErrInvalidInput, i+1)
		}
		if ids[p.ID] {
			return fmt.Errorf("%w: duplicate portfolio id %q", ErrInvalidInput, p.ID)
		}
		ids[p.ID] = true
		if p.Cash.IsNegative() {
			return fmt.Errorf("%w: portfolio %q has negative cash %v", ErrInvalidInput, p.ID, p.Cash)
		}
		codes := make(map[string]bool, len(p.Stocks))
		for _, pos := range p.Stocks {
			if pos.Code == "" {
				return fmt.Errorf("%w: portfolio %q holds a position without code", ErrInvalidInput, p.ID)
			}
			if codes[pos.Code] {
				return fmt.Errorf("%w: portfolio %q holds %q twice", ErrInvalidInput, p.ID, pos.Code)
			}
			codes[pos.Code] = true
			if !pos.Shares.IsPositive() || !pos.Shares.IsInteger() {
				return fmt.Errorf("%w: portfolio %q holds %v shares of %q", ErrInvalidInput, p.ID, pos.Shares, pos.Code)
			}
			if !pos.Current.IsPositive() {
				return fmt.Errorf("%w: portfolio %q prices %q at %v", ErrInvalidInput, p.ID, pos.Code, pos.Current)
			}
			if pos.Cost.IsNegative() {
				return fmt.Errorf("%w: portfolio %q has negative cost %v for %q", ErrInvalidInput, p.ID, pos.Cost, pos.Code)
			}
		}
	}
	return nil
}
