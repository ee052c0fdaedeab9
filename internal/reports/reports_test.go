package reports

import (
	"math"
	"testing"
	"time"

	"inkledger/internal/domain"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func svc(name string, daysAgo int, salePrice, totalCost float64) domain.Service {
	return domain.Service{
		Name:      name,
		Material:  domain.Snapshot{Name: "LONA 440G", Quantity: 2, Cost: 25},
		Ink:       domain.Snapshot{Name: "TINTA UV", Quantity: 10, Cost: 4.8},
		TotalCost: totalCost,
		SalePrice: salePrice,
		CreatedAt: now.AddDate(0, 0, -daysAgo),
	}
}

func TestLastDays_BoundaryWeek(t *testing.T) {
	in := []domain.Service{
		svc("recent", 3, 50, 30),
		svc("old", 8, 50, 30),
	}
	got := Filter(in, LastDays(now, 7))
	if len(got) != 1 || got[0].Name != "recent" {
		t.Fatalf("last 7 days should keep only the 3-day-old service, got %+v", got)
	}
}

func TestLastMonths_CalendarArithmetic(t *testing.T) {
	in := []domain.Service{
		{Name: "in", CreatedAt: time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)},
		{Name: "out", CreatedAt: time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)},
	}
	got := Filter(in, LastMonths(now, 1))
	if len(got) != 1 || got[0].Name != "in" {
		t.Fatalf("trailing month must cut at Feb 15, got %+v", got)
	}
}

func TestBetween_EndInclusiveThroughDay(t *testing.T) {
	end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	r := Between(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), end)

	lateOnEndDay := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
	if !r.Contains(lateOnEndDay) {
		t.Fatal("end date must be inclusive through 23:59:59.999")
	}
	nextDay := time.Date(2026, 3, 11, 0, 0, 1, 0, time.UTC)
	if r.Contains(nextDay) {
		t.Fatal("day after the end date must be excluded")
	}
}

func TestFilter_SortsDateDescending(t *testing.T) {
	in := []domain.Service{svc("a", 5, 1, 1), svc("b", 1, 1, 1), svc("c", 3, 1, 1)}
	got := Filter(in, All())
	if got[0].Name != "b" || got[1].Name != "c" || got[2].Name != "a" {
		t.Fatalf("expected b,c,a order, got %v %v %v", got[0].Name, got[1].Name, got[2].Name)
	}
}

func TestSummarize_Totals(t *testing.T) {
	in := []domain.Service{
		svc("s1", 1, 50, 34.80), // margin 30.4
		svc("s2", 2, 100, 50),   // margin 50
	}
	sum := Summarize(in, All())

	if sum.Count != 2 {
		t.Fatalf("count = %d, want 2", sum.Count)
	}
	checks := map[string][2]float64{
		"revenue":   {sum.TotalRevenue, 150},
		"costs":     {sum.TotalCosts, 84.80},
		"profit":    {sum.TotalProfit, 65.20},
		"avgMargin": {sum.AverageMargin, 40.2},
	}
	for name, pair := range checks {
		if math.Abs(pair[0]-pair[1]) > 1e-9 {
			t.Fatalf("%s = %v, want %v", name, pair[0], pair[1])
		}
	}
}

func TestSummarize_EmptyRange(t *testing.T) {
	sum := Summarize(nil, All())
	if sum.Count != 0 || sum.AverageMargin != 0 {
		t.Fatalf("empty ledger must yield zero summary, got %+v", sum)
	}
	if math.IsNaN(sum.AverageMargin) {
		t.Fatal("average margin must not be NaN on empty input")
	}
}

func TestSummarize_ZeroSalePriceContributesZeroMargin(t *testing.T) {
	in := []domain.Service{svc("free", 1, 0, 10)}
	sum := Summarize(in, All())
	if sum.AverageMargin != 0 {
		t.Fatalf("zero sale price must contribute zero margin, got %v", sum.AverageMargin)
	}
}

func TestSummarize_Groups(t *testing.T) {
	a := svc("s1", 1, 40, 20)
	b := svc("s2", 2, 60, 30)
	b.Material.Name = "ADESIVO FOSCO"
	b.Material.Quantity = 1.5
	in := []domain.Service{a, b}

	sum := Summarize(in, All())
	if len(sum.ByMaterial) != 2 {
		t.Fatalf("expected 2 material groups, got %d", len(sum.ByMaterial))
	}
	// Highest revenue first.
	if sum.ByMaterial[0].Name != "ADESIVO FOSCO" || sum.ByMaterial[0].Revenue != 60 {
		t.Fatalf("unexpected top material group: %+v", sum.ByMaterial[0])
	}
	if sum.ByMaterial[1].Quantity != 2 {
		t.Fatalf("LONA group quantity = %v, want 2", sum.ByMaterial[1].Quantity)
	}
	if len(sum.ByInk) != 1 || sum.ByInk[0].Count != 2 || sum.ByInk[0].Quantity != 20 {
		t.Fatalf("unexpected ink group: %+v", sum.ByInk)
	}
}

// Recomputed derived figures win over whatever the stored row claims.
func TestSummarize_IgnoresStoredDerivedFields(t *testing.T) {
	s := svc("tampered", 1, 100, 40)
	s.Profit = 999
	s.Margin = 999
	sum := Summarize([]domain.Service{s}, All())
	if sum.TotalProfit != 60 {
		t.Fatalf("profit must be recomputed, got %v", sum.TotalProfit)
	}
	if math.Abs(sum.AverageMargin-60) > 1e-9 {
		t.Fatalf("margin must be recomputed, got %v", sum.AverageMargin)
	}
}
