package reports

import (
	"fmt"
	"strings"
	"time"

	"inkledger/internal/domain"
)

// csvHeader is the fixed export header. Column order is part of the contract.
var csvHeader = []string{
	"Date", "Service", "Material", "Material Qty", "Ink", "Ink Qty",
	"Total Cost", "Sale Price", "Profit", "Margin",
}

// CSV serializes the services inside the range to comma-separated UTF-8 text,
// sorted by record date descending. Free-text fields are always quoted;
// numeric fields carry two decimals. Margin is already a percentage and is
// not multiplied again. An empty range yields only the header row.
func CSV(services []domain.Service, r Range) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	b.WriteByte('\n')

	for _, s := range Filter(services, r) {
		profit := s.SalePrice - s.TotalCost
		margin := 0.0
		if s.SalePrice > 0 {
			margin = profit / s.SalePrice * 100
		}
		row := []string{
			s.CreatedAt.Format("2006-01-02"),
			quote(s.Name),
			quote(s.Material.Name),
			fmt.Sprintf("%.2f", s.Material.Quantity),
			quote(s.Ink.Name),
			fmt.Sprintf("%.2f", s.Ink.Quantity),
			fmt.Sprintf("%.2f", s.TotalCost),
			fmt.Sprintf("%.2f", s.SalePrice),
			fmt.Sprintf("%.2f", profit),
			fmt.Sprintf("%.2f", margin),
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// CSVFilename embeds the current date in the download name.
func CSVFilename(now time.Time) string {
	return "print-report-" + now.Format("2006-01-02") + ".csv"
}

// quote wraps a free-text field in double quotes, doubling embedded quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
