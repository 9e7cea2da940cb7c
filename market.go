package portfolio

import (
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
)

// Rand is the source of randomness used to simulate market moves.
//
// *rand.Rand from math/rand/v2 implements it.
type Rand interface {
	Float64() float64
}

// NewRand returns a PCG-backed Rand. A zero seed picks a time-based one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

var (
	tickSpread = decimal.RequireFromString("0.01")  // ±0.5% per refresh
	minPrice   = decimal.RequireFromString("0.001") // floor after a tick
)

// Tick moves price by a uniform factor in [-0.5%, +0.5%), rounded to 3 decimals
// and never below 0.001.
func Tick(r Rand, price Money) Money {
	f := decimal.NewFromFloat(r.Float64() - 0.5).Mul(tickSpread).Add(decimal.NewFromInt(1))
	v := price.value.Mul(f).Round(3)
	if v.LessThan(minPrice) {
		v = minPrice
	}
	return Money{value: v, cur: price.cur}
}

// todayMove draws a simulated daily performance in [-3%, +3%).
func todayMove(r Rand, total Money) (Money, Percent) {
	pct := (r.Float64() - 0.5) * 6
	pnl := total.Scale(decimal.NewFromFloat(pct).Div(hundred)).Round(2)
	return pnl, Percent(pct)
}
