package portfolio

import (
	"slices"

	json "github.com/goccy/go-json"

	"github.com/williamleo0369-ux/quant-monitor-sub001/date"
)

// Position is a holding of a single instrument within a portfolio.
type Position struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Sector  string   `json:"sector"`
	Shares  Quantity `json:"shares"`
	Cost    Money    `json:"cost"`    // average cost per share
	Current Money    `json:"current"` // last known price
}

// MarketValue returns current × shares.
func (p Position) MarketValue() Money { return p.Current.Mul(p.Shares) }

// CostValue returns cost × shares.
func (p Position) CostValue() Money { return p.Cost.Mul(p.Shares) }

// Profit returns the unrealized gain of the position.
func (p Position) Profit() Money { return p.MarketValue().Sub(p.CostValue()) }

// ProfitPercent returns Profit relative to CostValue.
func (p Position) ProfitPercent() Percent { return p.Profit().PercentOf(p.CostValue()) }

// Portfolio is a named cash balance with stock positions.
//
// Totals are always derived from Cash and Stocks; they are never stored.
type Portfolio struct {
	ID              string
	Name            string
	CreateDate      date.Date
	Cash            Money
	Stocks          []Position // unique by Code, in insertion order
	TodayPnl        Money      // simulated
	TodayPnlPercent Percent    // simulated
}

// Position returns the position held for code.
func (p Portfolio) Position(code string) (Position, bool) {
	i := p.indexOf(code)
	if i < 0 {
		return Position{}, false
	}
	return p.Stocks[i], true
}

func (p Portfolio) indexOf(code string) int {
	return slices.IndexFunc(p.Stocks, func(s Position) bool { return s.Code == code })
}

// MarketValue is the sum of the positions market values.
func (p Portfolio) MarketValue() Money {
	total := M(0, p.Cash.cur)
	for _, s := range p.Stocks {
		total = total.Add(s.MarketValue())
	}
	return total
}

// CostValue is the sum of the positions cost values.
func (p Portfolio) CostValue() Money {
	total := M(0, p.Cash.cur)
	for _, s := range p.Stocks {
		total = total.Add(s.CostValue())
	}
	return total
}

// TotalAsset is cash plus the market value of every position.
func (p Portfolio) TotalAsset() Money { return p.Cash.Add(p.MarketValue()) }

// TotalPnl is the unrealized gain over all positions.
func (p Portfolio) TotalPnl() Money { return p.MarketValue().Sub(p.CostValue()) }

// TotalPnlPercent is TotalPnl relative to the cost value, 0 without positions.
func (p Portfolio) TotalPnlPercent() Percent { return p.TotalPnl().PercentOf(p.CostValue()) }

// Clone returns a deep copy of p.
func (p Portfolio) Clone() Portfolio {
	p.Stocks = slices.Clone(p.Stocks)
	return p
}

// withCurrency tags every amount of p with currency.
func (p *Portfolio) withCurrency(currency string) {
	p.Cash = p.Cash.In(currency)
	p.TodayPnl = p.TodayPnl.In(currency)
	for i := range p.Stocks {
		p.Stocks[i].Cost = p.Stocks[i].Cost.In(currency)
		p.Stocks[i].Current = p.Stocks[i].Current.In(currency)
	}
}

// MarshalJSON writes the persisted fields of the portfolio. Derived totals are
// not written.
func (p Portfolio) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("name", p.Name)
	w.Append("createDate", p.CreateDate)
	w.Append("cash", p.Cash)
	stocks := p.Stocks
	if stocks == nil {
		stocks = []Position{}
	}
	w.Append("stocks", stocks)
	if !p.TodayPnl.IsZero() || p.TodayPnlPercent != 0 {
		w.Append("todayPnl", p.TodayPnl)
		w.Append("todayPnlPercent", float64(p.TodayPnlPercent))
	}
	return w.MarshalJSON()
}

// UnmarshalJSON reads a persisted portfolio. Derived fields such as totalAsset,
// when present, are ignored.
func (p *Portfolio) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID              string     `json:"id"`
		Name            string     `json:"name"`
		CreateDate      date.Date  `json:"createDate"`
		Cash            Money      `json:"cash"`
		Stocks          []Position `json:"stocks"`
		TodayPnl        *Money     `json:"todayPnl"`
		TodayPnlPercent float64    `json:"todayPnlPercent"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*p = Portfolio{
		ID:              temp.ID,
		Name:            temp.Name,
		CreateDate:      temp.CreateDate,
		Cash:            temp.Cash,
		Stocks:          temp.Stocks,
		TodayPnlPercent: Percent(temp.TodayPnlPercent),
	}
	if temp.TodayPnl != nil {
		p.TodayPnl = *temp.TodayPnl
	}
	return nil
}
