package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"

	portfolio "github.com/williamleo0369-ux/quant-monitor-sub001"
	"github.com/williamleo0369-ux/quant-monitor-sub001/date"
	"github.com/williamleo0369-ux/quant-monitor-sub001/knowledge"
)

func cny(v float64) portfolio.Money { return portfolio.M(v, "CNY") }

func fixture() portfolio.Portfolio {
	return portfolio.Portfolio{
		ID:              "p1",
		Name:            "稳健组合",
		CreateDate:      date.New(2026, time.March, 2),
		Cash:            cny(100000),
		TodayPnl:        cny(1234.56),
		TodayPnlPercent: 0.43,
		Stocks: []portfolio.Position{
			{Code: "300750", Name: "宁德时代", Sector: "新能源", Shares: portfolio.Q(200), Cost: cny(210), Current: cny(198.45)},
			{Code: "600519", Name: "贵州茅台", Sector: "白酒", Shares: portfolio.Q(100), Cost: cny(1400), Current: cny(1485.3)},
		},
	}
}

func TestRender(t *testing.T) {
	p := fixture()
	other := portfolio.Portfolio{ID: "p2", Name: "a|b", CreateDate: date.New(2026, time.March, 3), Cash: cny(5000)}
	points := []portfolio.PerformancePoint{
		{Day: date.New(2026, time.March, 2), Value: 100, Benchmark: 100},
		{Day: date.New(2026, time.March, 3), Value: 110, Benchmark: 101},
		{Day: date.New(2026, time.March, 4), Value: 99, Benchmark: 102},
		{Day: date.New(2026, time.March, 5), Value: 120, Benchmark: 105},
	}
	moutai, _ := portfolio.DefaultCatalog().Instrument("600519")
	kb := knowledge.New(knowledge.DefaultArticles())
	article, _ := kb.Get(4)

	testCases := []struct {
		name string
		got  string
	}{
		{"summary", RenderSummary(portfolio.NewSummary(p))},
		{"holdings", RenderHoldings(portfolio.NewSummary(p), portfolio.NewHoldings(p, portfolio.HoldingsQuery{}))},
		{"allocation", RenderAllocation(p.Name, portfolio.NewAllocation(p))},
		{"portfolios", RenderPortfolios([]portfolio.Summary{portfolio.NewSummary(p), portfolio.NewSummary(other)}, "p1")},
		{"performance", RenderPerformance(points)},
		{"instruments", RenderInstruments([]portfolio.Instrument{moutai})},
		{"instruments_empty", RenderInstruments(nil)},
		{"articles", RenderArticles(kb.Categories(), kb.List(knowledge.Query{}),
			[]knowledge.RecentItem{{ArticleID: 3, Title: "如何分析上市公司财务报表"}})},
		{"article", RenderArticle(article)},
	}
	g := goldie.New(t)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g.Assert(t, tc.name, []byte(tc.got))
		})
	}
}

func TestRenderTemplate_Errors(t *testing.T) {
	if got := renderTemplate("x", "missing.md", nil, nil); !strings.HasPrefix(got, "error reading main template") {
		t.Errorf("renderTemplate(missing) = %q", got)
	}
	got := renderTemplate("summary", "summary.md", map[string]string{"summary_cards": "missing.md"}, nil)
	if !strings.HasPrefix(got, "error reading partial template") {
		t.Errorf("renderTemplate(missing partial) = %q", got)
	}
}
