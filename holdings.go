package portfolio

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField selects the column used to order a Holdings view.
type SortField int

const (
	SortByWeight SortField = iota
	SortByProfit
	SortByName
)

func (f SortField) String() string {
	switch f {
	case SortByWeight:
		return "weight"
	case SortByProfit:
		return "profit"
	case SortByName:
		return "name"
	default:
		return "unknown"
	}
}

// ParseSortField parses "weight", "profit" or "name".
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(s) {
	case "weight", "":
		return SortByWeight, nil
	case "profit":
		return SortByProfit, nil
	case "name":
		return SortByName, nil
	default:
		return 0, fmt.Errorf("%w: unknown sort field %q", ErrInvalidInput, s)
	}
}

// SortOrder is the direction of a Holdings view.
type SortOrder int

const (
	Descending SortOrder = iota
	Ascending
)

func (o SortOrder) String() string {
	if o == Ascending {
		return "asc"
	}
	return "desc"
}

// ParseSortOrder parses "asc" or "desc".
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(s) {
	case "desc", "":
		return Descending, nil
	case "asc":
		return Ascending, nil
	default:
		return 0, fmt.Errorf("%w: unknown sort order %q", ErrInvalidInput, s)
	}
}

// HoldingsQuery filters and orders a Holdings view. The zero value lists every
// position by descending weight.
type HoldingsQuery struct {
	Filter    string // substring of name, code or sector, case insensitive
	SortField SortField
	SortOrder SortOrder
}

// HoldingRow is a position enriched with its valuation.
type HoldingRow struct {
	Position
	MarketValue   Money
	CostValue     Money
	Profit        Money
	ProfitPercent Percent
	Weight        Percent // share of the total asset, cash included
}

// Holdings is the positions table of a portfolio.
type Holdings struct {
	PortfolioID string
	Name        string
	Rows        []HoldingRow
	Cash        Money
	CashWeight  Percent
	TotalAsset  Money
}

// HoldingsView computes the holdings of portfolio id.
func (l *Ledger) HoldingsView(id string, q HoldingsQuery) (Holdings, error) {
	p := l.get(id)
	if p == nil {
		return Holdings{}, opError("holdings", id, "", ErrNotFound, "no such portfolio")
	}
	return NewHoldings(*p, q), nil
}

// NewHoldings computes the holdings of p.
//
// Rows are sorted ascending by the query field with ties kept in insertion
// order; a descending view is the exact reverse of the ascending one.
func NewHoldings(p Portfolio, q HoldingsQuery) Holdings {
	total := p.TotalAsset()
	h := Holdings{
		PortfolioID: p.ID,
		Name:        p.Name,
		Cash:        p.Cash,
		CashWeight:  p.Cash.PercentOf(total),
		TotalAsset:  total,
	}
	match := matcher(q.Filter)
	for _, pos := range p.Stocks {
		if !match(pos) {
			continue
		}
		h.Rows = append(h.Rows, HoldingRow{
			Position:      pos,
			MarketValue:   pos.MarketValue(),
			CostValue:     pos.CostValue(),
			Profit:        pos.Profit(),
			ProfitPercent: pos.ProfitPercent(),
			Weight:        pos.MarketValue().PercentOf(total),
		})
	}

	var cmp func(a, b HoldingRow) int
	switch q.SortField {
	case SortByProfit:
		cmp = func(a, b HoldingRow) int { return a.Profit.value.Cmp(b.Profit.value) }
	case SortByName:
		c := collate.New(language.Chinese)
		cmp = func(a, b HoldingRow) int { return c.CompareString(a.Name, b.Name) }
	default:
		cmp = func(a, b HoldingRow) int { return a.MarketValue.value.Cmp(b.MarketValue.value) }
	}
	slices.SortStableFunc(h.Rows, cmp)
	if q.SortOrder == Descending {
		slices.Reverse(h.Rows)
	}
	return h
}

func matcher(filter string) func(Position) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return func(Position) bool { return true }
	}
	fold := cases.Fold()
	f := fold.String(filter)
	return func(p Position) bool {
		for _, s := range []string{p.Name, p.Code, p.Sector} {
			if strings.Contains(fold.String(s), f) {
				return true
			}
		}
		return false
	}
}
