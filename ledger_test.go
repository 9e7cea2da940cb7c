package portfolio

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/williamleo0369-ux/quant-monitor-sub001/date"
)

// newScenario returns a ledger with one portfolio holding cash 100000 and
// 100 X at cost 10, current 12.
func newScenario(t *testing.T) (*Ledger, string) {
	t.Helper()
	l := newTestLedger()
	p, err := l.CreatePortfolio("main", CNY(101000))
	if err != nil {
		t.Fatalf("CreatePortfolio() error = %v", err)
	}
	if err := l.Buy(p.ID, "X", CNY(10), Q(100)); err != nil {
		t.Fatalf("Buy() error = %v", err)
	}
	setPrice(l, p.ID, "X", CNY(12))
	return l, p.ID
}

func TestLedger_CreatePortfolio(t *testing.T) {
	l := newTestLedger()
	p, err := l.CreatePortfolio("  growth ", CNY(5000))
	if err != nil {
		t.Fatalf("CreatePortfolio() error = %v", err)
	}
	if p.ID != "p1" || p.Name != "growth" {
		t.Errorf("CreatePortfolio() = %q %q, want p1 growth", p.ID, p.Name)
	}
	if p.CreateDate != testDay {
		t.Errorf("CreateDate = %v, want %v", p.CreateDate, testDay)
	}
	if !p.TotalAsset().Equal(CNY(5000)) || len(p.Stocks) != 0 {
		t.Errorf("new portfolio total %v with %d positions, want 5000 and none", p.TotalAsset(), len(p.Stocks))
	}
	if sel, ok := l.Selected(); !ok || sel.ID != p.ID {
		t.Errorf("Selected() = %q, %v, want %q", sel.ID, ok, p.ID)
	}

	q, _ := l.CreatePortfolio("value", CNY(0))
	if sel, _ := l.Selected(); sel.ID != q.ID {
		t.Errorf("Selected() = %q, want the latest created %q", sel.ID, q.ID)
	}

	for _, name := range []string{"", "   "} {
		_, err := l.CreatePortfolio(name, CNY(100))
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("CreatePortfolio(%q) error = %v, want ErrInvalidInput", name, err)
		}
	}
	if _, err := l.CreatePortfolio("neg", CNY(-1)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("CreatePortfolio(-1) error = %v, want ErrInvalidInput", err)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}

func TestLedger_Scenario(t *testing.T) {
	l, id := newScenario(t)
	p := must(l.Portfolio(id))

	if !p.Cash.Equal(CNY(100000)) {
		t.Errorf("Cash = %v, want 100000", p.Cash)
	}
	if !p.TotalAsset().Equal(CNY(101200)) {
		t.Errorf("TotalAsset() = %v, want 101200", p.TotalAsset())
	}
	pos, _ := p.Position("X")
	if !pos.Profit().Equal(CNY(200)) {
		t.Errorf("Profit() = %v, want 200", pos.Profit())
	}
	if !pos.ProfitPercent().Equal(20) {
		t.Errorf("ProfitPercent() = %v, want 20%%", pos.ProfitPercent())
	}
	h := must(l.HoldingsView(id, HoldingsQuery{}))
	if got := h.Rows[0].Weight; got < 1.185 || got > 1.186 {
		t.Errorf("Weight = %v, want ~1.19%%", got)
	}
	if !p.TotalPnlPercent().Equal(20) {
		t.Errorf("TotalPnlPercent() = %v, want 20%%", p.TotalPnlPercent())
	}
}

func TestLedger_DeletePosition(t *testing.T) {
	l, id := newScenario(t)
	if err := l.DeletePosition(id, "X"); err != nil {
		t.Fatalf("DeletePosition() error = %v", err)
	}
	p := must(l.Portfolio(id))
	if !p.Cash.Equal(CNY(101200)) {
		t.Errorf("Cash = %v, want 101200", p.Cash)
	}
	if !p.TotalAsset().Equal(CNY(101200)) {
		t.Errorf("TotalAsset() = %v, want 101200", p.TotalAsset())
	}
	if _, ok := p.Position("X"); ok {
		t.Errorf("Position(X) still held after delete")
	}
	if err := l.DeletePosition(id, "X"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeletePosition() again error = %v, want ErrNotFound", err)
	}
}

func TestLedger_ResizeShares(t *testing.T) {
	tests := []struct {
		name      string
		cash      float64 // cash before resizing, 0 keeps the scenario's
		shares    int
		wantErr   error
		wantCash  float64
		wantHeld  bool
		wantShare int
	}{
		{name: "grow", shares: 150, wantCash: 99400, wantHeld: true, wantShare: 150},
		{name: "shrink", shares: 40, wantCash: 100720, wantHeld: true, wantShare: 40},
		{name: "same", shares: 100, wantCash: 100000, wantHeld: true, wantShare: 100},
		{name: "zero removes", shares: 0, wantCash: 101200},
		{name: "insufficient", cash: 500, shares: 150, wantErr: ErrInsufficientFunds},
		{name: "exact cash", cash: 600, shares: 150, wantCash: 0, wantHeld: true, wantShare: 150},
		{name: "negative", shares: -1, wantErr: ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, id := newScenario(t)
			if tt.cash != 0 {
				if err := l.SetCash(id, CNY(tt.cash)); err != nil {
					t.Fatalf("SetCash() error = %v", err)
				}
			}
			before := must(l.Portfolio(id))

			err := l.ResizeShares(id, "X", Q(tt.shares))
			after := must(l.Portfolio(id))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResizeShares() error = %v, want %v", err, tt.wantErr)
				}
				if !reflect.DeepEqual(before, after) {
					t.Errorf("ResizeShares() changed state on error: %+v -> %+v", before, after)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResizeShares() error = %v", err)
			}
			if !after.Cash.Equal(CNY(tt.wantCash)) {
				t.Errorf("Cash = %v, want %v", after.Cash, tt.wantCash)
			}
			pos, held := after.Position("X")
			if held != tt.wantHeld {
				t.Fatalf("held = %v, want %v", held, tt.wantHeld)
			}
			if held && pos.Shares.Int64() != int64(tt.wantShare) {
				t.Errorf("Shares = %v, want %d", pos.Shares, tt.wantShare)
			}
			if held && !pos.Cost.Equal(CNY(10)) {
				t.Errorf("Cost = %v, want unchanged 10", pos.Cost)
			}
		})
	}

	l, id := newScenario(t)
	if err := l.ResizeShares(id, "Y", Q(10)); !errors.Is(err, ErrNotFound) {
		t.Errorf("ResizeShares(unheld) error = %v, want ErrNotFound", err)
	}
}

func TestLedger_Buy(t *testing.T) {
	l := newTestLedger()
	id := must(l.CreatePortfolio("main", CNY(101000))).ID

	if err := l.Buy(id, "X", CNY(10), Q(100)); err != nil {
		t.Fatalf("Buy() error = %v", err)
	}
	if err := l.Buy(id, "X", CNY(20), Q(100)); err != nil {
		t.Fatalf("Buy() error = %v", err)
	}
	p := must(l.Portfolio(id))
	if len(p.Stocks) != 1 {
		t.Fatalf("len(Stocks) = %d, want 1 merged position", len(p.Stocks))
	}
	pos := p.Stocks[0]
	if pos.Shares.Int64() != 200 || !pos.Cost.Equal(CNY(15)) {
		t.Errorf("position = %v @ %v, want 200 @ 15", pos.Shares, pos.Cost)
	}
	if pos.Name != "Xylo" || pos.Sector != "tech" {
		t.Errorf("position named %q in %q, want Xylo in tech", pos.Name, pos.Sector)
	}
	if !pos.Current.Equal(CNY(10)) {
		t.Errorf("Current = %v, want the first buy price 10", pos.Current)
	}
	if !p.Cash.Equal(CNY(98000)) {
		t.Errorf("Cash = %v, want 98000", p.Cash)
	}
}

func TestLedger_BuyRejected(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		code    string
		price   Money
		shares  Quantity
		wantErr error
	}{
		{name: "over cash", code: "Y", price: CNY(20), shares: Q(100), wantErr: ErrInsufficientFunds},
		{name: "unknown instrument", code: "NOPE", price: CNY(1), shares: Q(1), wantErr: ErrUnknownInstrument},
		{name: "zero price", code: "X", price: CNY(0), shares: Q(1), wantErr: ErrInvalidInput},
		{name: "zero shares", code: "X", price: CNY(1), shares: Q(0), wantErr: ErrInvalidInput},
		{name: "fractional shares", code: "X", price: CNY(1), shares: Q(1.5), wantErr: ErrInvalidInput},
		{name: "missing portfolio", id: "nope", code: "X", price: CNY(1), shares: Q(1), wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger()
			id := must(l.CreatePortfolio("small", CNY(1000))).ID
			if tt.id != "" {
				id = tt.id
			}
			before := slicesOf(l)

			err := l.Buy(id, tt.code, tt.price, tt.shares)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Buy() error = %v, want %v", err, tt.wantErr)
			}
			var opErr *OpError
			if !errors.As(err, &opErr) || opErr.Op != "buy" || opErr.Code != tt.code {
				t.Errorf("Buy() error = %#v, want *OpError for buy %s", err, tt.code)
			}
			if after := slicesOf(l); !reflect.DeepEqual(before, after) {
				t.Errorf("Buy() changed state on error: %+v -> %+v", before, after)
			}
		})
	}
}

func slicesOf(l *Ledger) []Portfolio {
	var ps []Portfolio
	for p := range l.Portfolios() {
		ps = append(ps, p)
	}
	return ps
}

func TestLedger_SetCash(t *testing.T) {
	l, id := newScenario(t)
	if err := l.SetCash(id, CNY(-0.01)); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("SetCash(-0.01) error = %v, want ErrInvalidInput", err)
	}
	if err := l.SetCash(id, CNY(50)); err != nil {
		t.Fatalf("SetCash() error = %v", err)
	}
	p := must(l.Portfolio(id))
	if !p.TotalAsset().Equal(CNY(1250)) {
		t.Errorf("TotalAsset() = %v, want 1250", p.TotalAsset())
	}
	if p.Stocks[0].Shares.Int64() != 100 {
		t.Errorf("SetCash() changed the positions")
	}
	if err := l.SetCash("nope", CNY(1)); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetCash(nope) error = %v, want ErrNotFound", err)
	}
}

func TestLedger_RenamePortfolio(t *testing.T) {
	l, id := newScenario(t)
	if err := l.RenamePortfolio(id, " core "); err != nil {
		t.Fatalf("RenamePortfolio() error = %v", err)
	}
	if got := must(l.Portfolio(id)).Name; got != "core" {
		t.Errorf("Name = %q, want core", got)
	}
	if err := l.RenamePortfolio(id, ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("RenamePortfolio(\"\") error = %v, want ErrInvalidInput", err)
	}
}

func TestLedger_SelectPortfolio(t *testing.T) {
	l := newTestLedger()
	if err := l.SelectPortfolio("p1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SelectPortfolio() on empty ledger error = %v, want ErrNotFound", err)
	}
	if _, ok := l.Selected(); ok {
		t.Errorf("Selected() on empty ledger is set")
	}

	first := must(l.CreatePortfolio("a", CNY(1))).ID
	second := must(l.CreatePortfolio("b", CNY(1))).ID
	if err := l.SelectPortfolio(first); err != nil {
		t.Fatalf("SelectPortfolio() error = %v", err)
	}
	if l.SelectedID() != first {
		t.Errorf("SelectedID() = %q, want %q", l.SelectedID(), first)
	}
	if err := l.SelectPortfolio(second); err != nil {
		t.Fatalf("SelectPortfolio() error = %v", err)
	}
	if err := l.SelectPortfolio("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SelectPortfolio(missing) error = %v, want ErrNotFound", err)
	}
	if l.SelectedID() != first {
		t.Errorf("SelectedID() = %q, want fallback to first %q", l.SelectedID(), first)
	}
}

func TestLedger_RefreshPrices(t *testing.T) {
	l, id := newScenario(t)
	other := must(l.CreatePortfolio("other", CNY(1000))).ID
	if err := l.Buy(other, "Z", CNY(5), Q(100)); err != nil {
		t.Fatalf("Buy() error = %v", err)
	}
	l.rand = fixedRand(0.9)

	if err := l.RefreshPrices(id, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("RefreshPrices(missing) error = %v, want ErrNotFound", err)
	}
	if pos, _ := must(l.Portfolio(id)).Position("X"); !pos.Current.Equal(CNY(12)) {
		t.Fatalf("RefreshPrices() failed but moved X to %v", pos.Current)
	}

	if err := l.RefreshPrices(id); err != nil {
		t.Fatalf("RefreshPrices() error = %v", err)
	}
	p := must(l.Portfolio(id))
	pos, _ := p.Position("X")
	if !pos.Current.Equal(CNY(12.048)) {
		t.Errorf("Current = %v, want 12.048", pos.Current)
	}
	if !pos.Cost.Equal(CNY(10)) {
		t.Errorf("Cost = %v, want unchanged 10", pos.Cost)
	}
	if !p.TodayPnlPercent.Equal(2.4) {
		t.Errorf("TodayPnlPercent = %v, want 2.4%%", p.TodayPnlPercent)
	}
	if !p.TodayPnl.Equal(CNY(2428.92)) {
		t.Errorf("TodayPnl = %v, want 2428.92", p.TodayPnl)
	}
	if pos, _ := must(l.Portfolio(other)).Position("Z"); !pos.Current.Equal(CNY(5)) {
		t.Errorf("RefreshPrices(%s) moved another portfolio to %v", id, pos.Current)
	}

	if err := l.RefreshPrices(); err != nil {
		t.Fatalf("RefreshPrices() error = %v", err)
	}
	if pos, _ := must(l.Portfolio(other)).Position("Z"); !pos.Current.Equal(CNY(5.02)) {
		t.Errorf("Current = %v, want 5.02", pos.Current)
	}
}

func TestLedger_Summary(t *testing.T) {
	l, id := newScenario(t)
	s := must(l.Summary(id))
	if !s.TotalAsset.Equal(CNY(101200)) || !s.MarketValue.Equal(CNY(1200)) || !s.Cash.Equal(CNY(100000)) {
		t.Errorf("Summary() = %+v", s)
	}
	if !s.TotalPnl.Equal(CNY(200)) || s.Positions != 1 {
		t.Errorf("Summary() pnl %v with %d positions, want 200 and 1", s.TotalPnl, s.Positions)
	}
	if _, err := l.Summary("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Summary(nope) error = %v, want ErrNotFound", err)
	}
}

func TestLedger_PortfolioIsACopy(t *testing.T) {
	l, id := newScenario(t)
	p := must(l.Portfolio(id))
	p.Stocks[0].Shares = Q(1)
	p.Cash = CNY(0)
	if got := must(l.Portfolio(id)); got.Stocks[0].Shares.Int64() != 100 || !got.Cash.Equal(CNY(100000)) {
		t.Errorf("mutating a returned portfolio changed the ledger")
	}
}

// TestLedger_Invariants runs random operation sequences and checks the ledger
// invariants after each of them.
func TestLedger_Invariants(t *testing.T) {
	codes := []string{"X", "Y", "Z", "600519", "NOPE"}
	r := rand.New(rand.NewPCG(42, 7))
	l := NewLedger(testCatalog, WithRand(r))
	ids := []string{must(l.CreatePortfolio("a", CNY(50000))).ID, must(l.CreatePortfolio("b", CNY(3000))).ID}

	for step := range 2000 {
		id := ids[r.IntN(len(ids))]
		code := codes[r.IntN(len(codes))]
		switch r.IntN(6) {
		case 0:
			_ = l.Buy(id, code, M(1+r.Float64()*100, "CNY").Round(2), Q(r.IntN(300)))
		case 1:
			_ = l.ResizeShares(id, code, Q(r.IntN(300)))
		case 2:
			_ = l.DeletePosition(id, code)
		case 3:
			_ = l.SetCash(id, M(r.Float64()*20000-1000, "CNY").Round(2))
		case 4:
			_ = l.RefreshPrices()
		case 5:
			_ = l.SelectPortfolio(id)
		}
		for p := range l.Portfolios() {
			if p.Cash.IsNegative() {
				t.Fatalf("step %d: %s cash = %v", step, p.ID, p.Cash)
			}
			sum := p.Cash
			seen := map[string]bool{}
			for _, pos := range p.Stocks {
				if !pos.Shares.IsPositive() {
					t.Fatalf("step %d: %s holds %v %s", step, p.ID, pos.Shares, pos.Code)
				}
				if seen[pos.Code] {
					t.Fatalf("step %d: %s holds %s twice", step, p.ID, pos.Code)
				}
				seen[pos.Code] = true
				sum = sum.Add(pos.Current.Mul(pos.Shares))
			}
			if !p.TotalAsset().Equal(sum) {
				t.Fatalf("step %d: TotalAsset() = %v, want %v", step, p.TotalAsset(), sum)
			}
		}
	}
}

func TestLedger_CreateDateFromClock(t *testing.T) {
	l := NewLedger(testCatalog)
	p := must(l.CreatePortfolio("today", CNY(1)))
	if p.CreateDate != date.Today() {
		t.Errorf("CreateDate = %v, want today", p.CreateDate)
	}
	if p.ID == "" {
		t.Errorf("ID is empty")
	}
}
