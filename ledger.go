package portfolio

import (
	"errors"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/williamleo0369-ux/quant-monitor-sub001/date"
)

// Ledger owns the portfolios and the selected portfolio.
//
// Every mutation validates its inputs against the current state first and
// only then applies; a rejected mutation leaves the Ledger unchanged and
// returns an *OpError. A Ledger is not safe for concurrent use.
type Ledger struct {
	portfolios []*Portfolio
	selected   string

	instruments InstrumentLookup
	rand        Rand
	now         func() time.Time
	newID       func() string
	currency    string
	log         zerolog.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used to report applied and rejected operations.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Ledger) { l.log = log.With().Str("module", "ledger").Logger() }
}

// WithRand sets the source of simulated price moves.
func WithRand(r Rand) Option { return func(l *Ledger) { l.rand = r } }

// WithClock sets the clock used for creation dates.
func WithClock(now func() time.Time) Option { return func(l *Ledger) { l.now = now } }

// WithCurrency sets the currency of every amount in the ledger.
func WithCurrency(currency string) Option { return func(l *Ledger) { l.currency = currency } }

// WithIDGenerator sets the portfolio id generator.
func WithIDGenerator(gen func() string) Option { return func(l *Ledger) { l.newID = gen } }

// NewLedger creates an empty ledger that resolves instruments with lookup.
func NewLedger(lookup InstrumentLookup, opts ...Option) *Ledger {
	l := &Ledger{
		instruments: lookup,
		now:         time.Now,
		newID:       newPortfolioID,
		currency:    DefaultCurrency,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.rand == nil {
		l.rand = NewRand(0)
	}
	return l
}

// newPortfolioID returns a time-ordered unique id.
func newPortfolioID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Currency returns the currency of the ledger amounts.
func (l *Ledger) Currency() string { return l.currency }

// Len returns the number of portfolios.
func (l *Ledger) Len() int { return len(l.portfolios) }

// Portfolios iterates over copies of the portfolios in creation order.
func (l *Ledger) Portfolios() iter.Seq[Portfolio] {
	return func(yield func(Portfolio) bool) {
		for _, p := range l.portfolios {
			if !yield(p.Clone()) {
				return
			}
		}
	}
}

// Portfolio returns a copy of the portfolio id.
func (l *Ledger) Portfolio(id string) (Portfolio, error) {
	p := l.get(id)
	if p == nil {
		return Portfolio{}, opError("get", id, "", ErrNotFound, "no such portfolio")
	}
	return p.Clone(), nil
}

// Selected returns a copy of the selected portfolio.
func (l *Ledger) Selected() (Portfolio, bool) {
	p := l.get(l.selected)
	if p == nil {
		return Portfolio{}, false
	}
	return p.Clone(), true
}

// SelectedID returns the id of the selected portfolio, empty if none.
func (l *Ledger) SelectedID() string { return l.selected }

func (l *Ledger) get(id string) *Portfolio {
	if id == "" {
		return nil
	}
	for _, p := range l.portfolios {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CreatePortfolio appends a portfolio holding only initialCash and selects it.
// A blank name is rejected with ErrInvalidInput and nothing is created.
func (l *Ledger) CreatePortfolio(name string, initialCash Money) (Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Portfolio{}, l.reject(opError("create", "", "", ErrInvalidInput, "name is empty"))
	}
	if initialCash.IsNegative() {
		return Portfolio{}, l.reject(opError("create", "", "", ErrInvalidInput, "initial cash %v is negative", initialCash))
	}
	p := &Portfolio{
		ID:         l.newID(),
		Name:       name,
		CreateDate: date.Of(l.now()),
		Cash:       initialCash.In(l.currency),
		TodayPnl:   M(0, l.currency),
	}
	l.portfolios = append(l.portfolios, p)
	l.selected = p.ID
	l.log.Info().Str("op", "create").Str("portfolio", p.ID).Str("name", name).Stringer("cash", p.Cash).Msg("portfolio created")
	return p.Clone(), nil
}

// RenamePortfolio changes the display name of a portfolio.
func (l *Ledger) RenamePortfolio(id, name string) error {
	p := l.get(id)
	if p == nil {
		return l.reject(opError("rename", id, "", ErrNotFound, "no such portfolio"))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return l.reject(opError("rename", id, "", ErrInvalidInput, "name is empty"))
	}
	p.Name = name
	l.log.Info().Str("op", "rename").Str("portfolio", id).Str("name", name).Msg("portfolio renamed")
	return nil
}

// SetCash replaces the cash balance of a portfolio. Positions are untouched.
func (l *Ledger) SetCash(id string, cash Money) error {
	p := l.get(id)
	if p == nil {
		return l.reject(opError("cash", id, "", ErrNotFound, "no such portfolio"))
	}
	if cash.IsNegative() {
		return l.reject(opError("cash", id, "", ErrInvalidInput, "cash %v is negative", cash))
	}
	p.Cash = cash.In(l.currency)
	l.log.Info().Str("op", "cash").Str("portfolio", id).Stringer("cash", p.Cash).Msg("cash set")
	return nil
}

// Buy purchases shares of code at price, debiting price × shares from cash.
//
// A code already held is merged into its position at the weighted average cost.
// A new position takes its name and sector from the instrument lookup, and
// an unknown code is rejected with ErrUnknownInstrument.
func (l *Ledger) Buy(id, code string, price Money, shares Quantity) error {
	p := l.get(id)
	if p == nil {
		return l.reject(opError("buy", id, code, ErrNotFound, "no such portfolio"))
	}
	if !price.IsPositive() {
		return l.reject(opError("buy", id, code, ErrInvalidInput, "price %v must be positive", price))
	}
	if !shares.IsPositive() || !shares.IsInteger() {
		return l.reject(opError("buy", id, code, ErrInvalidInput, "shares %v must be a positive integer", shares))
	}
	inst, ok := l.instruments.Instrument(code)
	if !ok {
		return l.reject(opError("buy", id, code, ErrUnknownInstrument, "code is not in the instrument reference"))
	}
	price = price.In(l.currency)
	cost := price.Mul(shares)
	if cost.GreaterThan(p.Cash) {
		return l.reject(opError("buy", id, code, ErrInsufficientFunds, "cost %v exceeds cash %v", cost, p.Cash))
	}

	if i := p.indexOf(code); i >= 0 {
		pos := &p.Stocks[i]
		total := pos.Shares.Add(shares)
		pos.Cost = pos.CostValue().Add(cost).Div(total)
		pos.Shares = total
	} else {
		p.Stocks = append(p.Stocks, Position{
			Code:    code,
			Name:    inst.Name,
			Sector:  inst.Sector,
			Shares:  shares,
			Cost:    price,
			Current: price,
		})
	}
	p.Cash = p.Cash.Sub(cost)
	l.log.Info().Str("op", "buy").Str("portfolio", id).Str("code", code).
		Stringer("shares", shares).Stringer("price", price).Stringer("cash", p.Cash).Msg("bought")
	return nil
}

// ResizeShares sets the number of shares of a held position. The difference is
// priced at the position's current price and settled in cash; the cost basis
// is not changed. Resizing to zero removes the position.
func (l *Ledger) ResizeShares(id, code string, shares Quantity) error {
	p := l.get(id)
	if p == nil {
		return l.reject(opError("resize", id, code, ErrNotFound, "no such portfolio"))
	}
	if shares.IsNegative() || !shares.IsInteger() {
		return l.reject(opError("resize", id, code, ErrInvalidInput, "shares %v must be a non-negative integer", shares))
	}
	i := p.indexOf(code)
	if i < 0 {
		return l.reject(opError("resize", id, code, ErrNotFound, "position not held"))
	}
	pos := p.Stocks[i]
	delta := shares.Sub(pos.Shares)
	cashDelta := pos.Current.Mul(delta)
	if delta.IsPositive() && cashDelta.GreaterThan(p.Cash) {
		return l.reject(opError("resize", id, code, ErrInsufficientFunds, "cost %v exceeds cash %v", cashDelta, p.Cash))
	}

	if shares.IsZero() {
		p.Stocks = slices.Delete(p.Stocks, i, i+1)
	} else {
		p.Stocks[i].Shares = shares
	}
	p.Cash = p.Cash.Sub(cashDelta)
	l.log.Info().Str("op", "resize").Str("portfolio", id).Str("code", code).
		Stringer("shares", shares).Stringer("cash", p.Cash).Msg("resized")
	return nil
}

// DeletePosition liquidates a position at its current price and credits cash.
func (l *Ledger) DeletePosition(id, code string) error {
	p := l.get(id)
	if p == nil {
		return l.reject(opError("delete", id, code, ErrNotFound, "no such portfolio"))
	}
	i := p.indexOf(code)
	if i < 0 {
		return l.reject(opError("delete", id, code, ErrNotFound, "position not held"))
	}
	proceeds := p.Stocks[i].MarketValue()
	p.Stocks = slices.Delete(p.Stocks, i, i+1)
	p.Cash = p.Cash.Add(proceeds)
	l.log.Info().Str("op", "delete").Str("portfolio", id).Str("code", code).
		Stringer("proceeds", proceeds).Stringer("cash", p.Cash).Msg("position liquidated")
	return nil
}

// RefreshPrices moves the current price of every position of the given
// portfolios, all of them when no id is given, and draws a new simulated daily
// performance for each. Every unknown id is reported and nothing changes.
func (l *Ledger) RefreshPrices(ids ...string) error {
	targets := l.portfolios
	if len(ids) > 0 {
		targets = make([]*Portfolio, 0, len(ids))
		var errs []error
		for _, id := range ids {
			p := l.get(id)
			if p == nil {
				errs = append(errs, l.reject(opError("refresh", id, "", ErrNotFound, "no such portfolio")))
				continue
			}
			if !slices.Contains(targets, p) {
				targets = append(targets, p)
			}
		}
		if len(errs) > 0 {
			return errors.Join(errs...)
		}
	}
	for _, p := range targets {
		for i := range p.Stocks {
			p.Stocks[i].Current = Tick(l.rand, p.Stocks[i].Current)
		}
		p.TodayPnl, p.TodayPnlPercent = todayMove(l.rand, p.TotalAsset())
		l.log.Info().Str("op", "refresh").Str("portfolio", p.ID).
			Stringer("total", p.TotalAsset()).Stringer("today", p.TodayPnlPercent).Msg("prices refreshed")
	}
	return nil
}

// SelectPortfolio makes id the selected portfolio. If id does not exist the
// first portfolio is selected instead and ErrNotFound is returned.
func (l *Ledger) SelectPortfolio(id string) error {
	if l.get(id) != nil {
		l.selected = id
		l.log.Debug().Str("op", "select").Str("portfolio", id).Msg("portfolio selected")
		return nil
	}
	l.selected = ""
	if len(l.portfolios) > 0 {
		l.selected = l.portfolios[0].ID
	}
	return l.reject(opError("select", id, "", ErrNotFound, "no such portfolio"))
}

// Summary holds the headline figures of a portfolio.
type Summary struct {
	ID              string
	Name            string
	CreateDate      date.Date
	TotalAsset      Money
	MarketValue     Money
	Cash            Money
	TodayPnl        Money
	TodayPnlPercent Percent
	TotalPnl        Money
	TotalPnlPercent Percent
	Positions       int
}

// Summary computes the headline figures of portfolio id.
func (l *Ledger) Summary(id string) (Summary, error) {
	p := l.get(id)
	if p == nil {
		return Summary{}, opError("summary", id, "", ErrNotFound, "no such portfolio")
	}
	return NewSummary(*p), nil
}

// NewSummary computes the headline figures of p.
func NewSummary(p Portfolio) Summary {
	return Summary{
		ID:              p.ID,
		Name:            p.Name,
		CreateDate:      p.CreateDate,
		TotalAsset:      p.TotalAsset(),
		MarketValue:     p.MarketValue(),
		Cash:            p.Cash,
		TodayPnl:        p.TodayPnl,
		TodayPnlPercent: p.TodayPnlPercent,
		TotalPnl:        p.TotalPnl(),
		TotalPnlPercent: p.TotalPnlPercent(),
		Positions:       len(p.Stocks),
	}
}

// reject logs a rejected operation and returns it.
func (l *Ledger) reject(err *OpError) error {
	l.log.Debug().Str("op", err.Op).Str("portfolio", err.Portfolio).Str("code", err.Code).Err(err.Kind).Msg(err.Detail)
	return err
}

// replace swaps the whole state of l. Used by LedgerStore after validation.
func (l *Ledger) replace(portfolios []Portfolio, selected string) {
	l.portfolios = make([]*Portfolio, len(portfolios))
	for i := range portfolios {
		p := portfolios[i].Clone()
		p.withCurrency(l.currency)
		l.portfolios[i] = &p
	}
	l.selected = ""
	if l.get(selected) != nil {
		l.selected = selected
	} else if len(l.portfolios) > 0 && selected != "" {
		l.selected = l.portfolios[0].ID
	}
}
