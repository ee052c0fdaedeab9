package reports

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"inkledger/internal/domain"
)

// Excel serializes the services inside the range to an XLSX workbook with the
// same columns as the CSV export plus a summary block.
func Excel(services []domain.Service, r Range) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	widths := []float64{12, 28, 28, 12, 28, 10, 12, 12, 12, 10}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, h := range csvHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(csvHeader))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	filtered := Filter(services, r)
	row := 2
	for _, s := range filtered {
		profit := s.SalePrice - s.TotalCost
		margin := 0.0
		if s.SalePrice > 0 {
			margin = profit / s.SalePrice * 100
		}
		values := []any{
			s.CreatedAt.Format("2006-01-02"),
			s.Name,
			s.Material.Name,
			s.Material.Quantity,
			s.Ink.Name,
			s.Ink.Quantity,
			s.TotalCost,
			s.SalePrice,
			profit,
			margin,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
		row++
	}

	sum := Summarize(services, r)
	row++
	summary := []struct {
		label string
		value any
	}{
		{"Services", sum.Count},
		{"Total Revenue", sum.TotalRevenue},
		{"Total Costs", sum.TotalCosts},
		{"Total Profit", sum.TotalProfit},
		{"Average Margin %", sum.AverageMargin},
	}
	for _, line := range summary {
		labelCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellValue(sheet, labelCell, line.label); err != nil {
			return nil, fmt.Errorf("write summary: %w", err)
		}
		if err := f.SetCellValue(sheet, valueCell, line.value); err != nil {
			return nil, fmt.Errorf("write summary: %w", err)
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExcelFilename embeds the current date in the download name.
func ExcelFilename(now time.Time) string {
	return "print-report-" + now.Format("2006-01-02") + ".xlsx"
}
