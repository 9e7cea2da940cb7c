package portfolio

import (
	"time"

	"github.com/williamleo0369-ux/quant-monitor-sub001/date"
)

// CNY is a helper for test to create yuan money from const.
func CNY(v float64) Money { return M(v, "CNY") }

// testCatalog is a small instrument reference for tests.
var testCatalog = NewCatalog(
	Instrument{Code: "X", Name: "Xylo", Type: Stock, Sector: "tech", Price: CNY(12), PrevClose: CNY(11)},
	Instrument{Code: "Y", Name: "Yarrow", Type: Stock, Sector: "health", Price: CNY(20), PrevClose: CNY(20)},
	Instrument{Code: "Z", Name: "Zephyr", Type: ETF, Sector: "tech", Price: CNY(5), PrevClose: CNY(5)},
	Instrument{Code: "600519", Name: "贵州茅台", Type: Stock, Sector: "白酒", Price: CNY(1485.3), PrevClose: CNY(1486.6)},
)

// fixedRand returns the same value forever.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

// seqRand returns its values in turn, cycling.
type seqRand struct {
	values []float64
	i      int
}

func (r *seqRand) Float64() float64 {
	v := r.values[r.i%len(r.values)]
	r.i++
	return v
}

var testDay = date.New(2026, time.March, 2)

// newTestLedger returns a ledger with deterministic ids, clock and randomness.
func newTestLedger(opts ...Option) *Ledger {
	n := 0
	base := []Option{
		WithRand(fixedRand(0.5)),
		WithClock(func() time.Time { return time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC) }),
		WithIDGenerator(func() string {
			n++
			return "p" + string(rune('0'+n))
		}),
	}
	return NewLedger(testCatalog, append(base, opts...)...)
}

// must is a helper for test to panic on error.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// setPrice forces the current price of a position for tests.
func setPrice(l *Ledger, id, code string, price Money) {
	p := l.get(id)
	p.Stocks[p.indexOf(code)].Current = price
}
