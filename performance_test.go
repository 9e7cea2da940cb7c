package portfolio

import (
	"math"
	"testing"

	"github.com/williamleo0369-ux/quant-monitor-sub001/date"
)

func TestNetValueSeries(t *testing.T) {
	points := NetValueSeries(fixedRand(0.5), date.Range{From: testDay, To: testDay.Add(29)})
	if len(points) != 30 {
		t.Fatalf("len = %d, want 30", len(points))
	}
	if points[0].Day != testDay || points[29].Day != testDay.Add(29) {
		t.Errorf("days = %v..%v", points[0].Day, points[29].Day)
	}
	// value = 100 + 0.5×15 - 5 + i×0.2, benchmark = 100 + 0.5×10 - 5 + i×0.1
	if points[0].Value != 102.5 || points[0].Benchmark != 100 {
		t.Errorf("points[0] = %+v", points[0])
	}
	if math.Abs(points[10].Value-104.5) > 1e-9 || math.Abs(points[10].Benchmark-101) > 1e-9 {
		t.Errorf("points[10] = %+v", points[10])
	}
	if NetValueSeries(fixedRand(0.5), date.Range{From: testDay, To: testDay.Add(-1)}) != nil {
		t.Errorf("NetValueSeries(0 days) is not empty")
	}
}

func TestPerformance(t *testing.T) {
	points := []PerformancePoint{
		{Value: 100, Benchmark: 100},
		{Value: 110, Benchmark: 101},
		{Value: 99, Benchmark: 102},
		{Value: 120, Benchmark: 105},
	}
	s := Performance(points)
	if !s.Return.Equal(20) || !s.BenchmarkReturn.Equal(5) || !s.Excess.Equal(15) {
		t.Errorf("returns = %v %v %v, want 20%% 5%% 15%%", s.Return, s.BenchmarkReturn, s.Excess)
	}
	if !s.MaxDrawdown.Equal(10) {
		t.Errorf("MaxDrawdown = %v, want 10%%", s.MaxDrawdown)
	}
	if s.Volatility <= 0 {
		t.Errorf("Volatility = %v, want positive", s.Volatility)
	}

	flat := Performance([]PerformancePoint{{Value: 100}, {Value: 100}, {Value: 100}})
	if flat.Volatility != 0 || flat.MaxDrawdown != 0 || flat.Return != 0 {
		t.Errorf("Performance(flat) = %+v", flat)
	}
	if (Performance(points[:1]) != PerformanceStats{}) {
		t.Errorf("Performance(one point) is not zero")
	}
}
