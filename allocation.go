package portfolio

import (
	"slices"
)

// CashSector names the allocation slice of uninvested cash.
const CashSector = "cash"

// AllocationSlice is the share of the total asset held in one sector.
type AllocationSlice struct {
	Sector  string
	Percent int // rounded to the nearest integer, halves away from zero
	Amount  Money
}

// AllocationView computes the sector allocation of portfolio id.
func (l *Ledger) AllocationView(id string) ([]AllocationSlice, error) {
	p := l.get(id)
	if p == nil {
		return nil, opError("allocation", id, "", ErrNotFound, "no such portfolio")
	}
	return NewAllocation(*p), nil
}

// NewAllocation groups the market value of p by sector and appends the cash
// slice. Slices are ordered by decreasing amount, ties in first-seen order.
//
// Percentages are rounded independently, so their sum may differ from 100 by
// up to the number of slices.
func NewAllocation(p Portfolio) []AllocationSlice {
	total := p.TotalAsset()
	var res []AllocationSlice
	index := make(map[string]int)
	for _, pos := range p.Stocks {
		i, ok := index[pos.Sector]
		if !ok {
			i = len(res)
			index[pos.Sector] = i
			res = append(res, AllocationSlice{Sector: pos.Sector, Amount: M(0, p.Cash.cur)})
		}
		res[i].Amount = res[i].Amount.Add(pos.MarketValue())
	}
	res = append(res, AllocationSlice{Sector: CashSector, Amount: p.Cash})

	for i := range res {
		res[i].Percent = percentInt(res[i].Amount, total)
	}
	slices.SortStableFunc(res, func(a, b AllocationSlice) int { return b.Amount.value.Cmp(a.Amount.value) })
	return res
}

// percentInt returns part/total×100 rounded half away from zero, 0 if total is zero.
func percentInt(part, total Money) int {
	if total.IsZero() {
		return 0
	}
	return int(part.value.Mul(hundred).Div(total.value).Round(0).IntPart())
}
