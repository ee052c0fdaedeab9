// Package reports folds the service ledger into summary statistics and
// serializes it for export.
package reports

import (
	"sort"
	"time"

	"inkledger/internal/domain"
)

// Range bounds a report by record date. Zero Start or End means unbounded on
// that side.
type Range struct {
	Start time.Time
	End   time.Time
}

// All matches every service.
func All() Range { return Range{} }

// LastDays matches services recorded within the trailing n calendar days.
func LastDays(now time.Time, n int) Range {
	return Range{Start: now.AddDate(0, 0, -n)}
}

// LastMonths matches services recorded within the trailing n calendar months.
// Calendar arithmetic, not fixed 24h multiples, so month lengths are honored.
func LastMonths(now time.Time, n int) Range {
	return Range{Start: now.AddDate(0, -n, 0)}
}

// LastYears matches services recorded within the trailing n calendar years.
func LastYears(now time.Time, n int) Range {
	return Range{Start: now.AddDate(-n, 0, 0)}
}

// Between bounds the range by an explicit pair of dates. The end date is
// inclusive through the end of that calendar day.
func Between(start, end time.Time) Range {
	r := Range{Start: start}
	if !end.IsZero() {
		r.End = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999_000_000, end.Location())
	}
	return r
}

func (r Range) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// Filter returns the services inside the range, sorted by record date
// descending.
func Filter(services []domain.Service, r Range) []domain.Service {
	out := make([]domain.Service, 0, len(services))
	for _, s := range services {
		if r.Contains(s.CreatedAt) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// GroupStat is a per-material or per-ink roll-up.
type GroupStat struct {
	Name     string
	Count    int
	Revenue  float64
	Quantity float64
}

// Summary is the aggregate view of a filtered ledger.
type Summary struct {
	Count         int
	TotalRevenue  float64
	TotalCosts    float64
	TotalProfit   float64
	AverageMargin float64
	ByMaterial    []GroupStat
	ByInk         []GroupStat
}

// Summarize aggregates the services inside the range. Profit and margin are
// recomputed from sale price and total cost rather than read from the stored
// rows, so a stale derived field can never skew a report.
func Summarize(services []domain.Service, r Range) Summary {
	in := Filter(services, r)

	var sum Summary
	sum.Count = len(in)

	marginTotal := 0.0
	matGroups := map[string]*GroupStat{}
	inkGroups := map[string]*GroupStat{}

	for _, s := range in {
		profit := s.SalePrice - s.TotalCost
		sum.TotalRevenue += s.SalePrice
		sum.TotalCosts += s.TotalCost
		sum.TotalProfit += profit
		if s.SalePrice > 0 {
			marginTotal += profit / s.SalePrice * 100
		}

		accumulate(matGroups, s.Material.Name, s.SalePrice, s.Material.Quantity)
		accumulate(inkGroups, s.Ink.Name, s.SalePrice, s.Ink.Quantity)
	}

	if sum.Count > 0 {
		sum.AverageMargin = marginTotal / float64(sum.Count)
	}
	sum.ByMaterial = sortedGroups(matGroups)
	sum.ByInk = sortedGroups(inkGroups)
	return sum
}

func accumulate(groups map[string]*GroupStat, name string, revenue, qty float64) {
	g, ok := groups[name]
	if !ok {
		g = &GroupStat{Name: name}
		groups[name] = g
	}
	g.Count++
	g.Revenue += revenue
	g.Quantity += qty
}

func sortedGroups(groups map[string]*GroupStat) []GroupStat {
	out := make([]GroupStat, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Name < out[j].Name
	})
	return out
}
