package portfolio

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/williamleo0369-ux/quant-monitor-sub001/date"
)

// PerformancePoint is one day of a normalized net value series.
type PerformancePoint struct {
	Day       date.Date
	Value     float64 // portfolio net value, 100 at origin
	Benchmark float64 // benchmark net value, 100 at origin
}

// NetValueSeries simulates one point of portfolio and benchmark net value per
// day of days. Both drift upward with noise drawn from r.
func NetValueSeries(r Rand, days date.Range) []PerformancePoint {
	var points []PerformancePoint
	for day := range days.Days() {
		i := float64(len(points))
		points = append(points, PerformancePoint{
			Day:       day,
			Value:     100 + r.Float64()*15 - 5 + i*0.2,
			Benchmark: 100 + r.Float64()*10 - 5 + i*0.1,
		})
	}
	return points
}

// PerformanceStats summarizes a net value series.
type PerformanceStats struct {
	Return          Percent // first to last value
	BenchmarkReturn Percent
	Excess          Percent // Return - BenchmarkReturn
	Volatility      Percent // standard deviation of daily returns
	MaxDrawdown     Percent // largest peak to trough loss, as a positive number
}

// Performance computes the statistics of points. Fewer than two points give zero stats.
func Performance(points []PerformancePoint) PerformanceStats {
	if len(points) < 2 {
		return PerformanceStats{}
	}
	values := make([]float64, len(points))
	bench := make([]float64, len(points))
	for i, p := range points {
		values[i], bench[i] = p.Value, p.Benchmark
	}
	s := PerformanceStats{
		Return:          growth(values[0], values[len(values)-1]),
		BenchmarkReturn: growth(bench[0], bench[len(bench)-1]),
	}
	s.Excess = s.Return - s.BenchmarkReturn

	daily := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		daily[i-1] = float64(growth(values[i-1], values[i]))
	}
	if len(daily) > 1 {
		s.Volatility = Percent(stat.StdDev(daily, nil))
	}

	drawdowns := make([]float64, len(values))
	peak := values[0]
	for i, v := range values {
		peak = max(peak, v)
		drawdowns[i] = float64(growth(peak, v))
	}
	s.MaxDrawdown = Percent(-floats.Min(drawdowns))
	return s
}

func growth(from, to float64) Percent {
	if from == 0 {
		return 0
	}
	return Percent((to/from - 1) * 100)
}
