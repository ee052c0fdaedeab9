package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"inkledger/internal/domain"
)

func TestCSV_EmptyRangeHeaderOnly(t *testing.T) {
	out := string(CSV(nil, All()))
	want := "Date,Service,Material,Material Qty,Ink,Ink Qty,Total Cost,Sale Price,Profit,Margin\n"
	if out != want {
		t.Fatalf("empty export = %q, want header only", out)
	}
}

func TestCSV_RowFormatting(t *testing.T) {
	s := svc("Banner 3x1", 2, 50, 34.80)
	out := string(CSV([]domain.Service{s}, All()))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	wantRow := s.CreatedAt.Format("2006-01-02") +
		`,"Banner 3x1","LONA 440G",2.00,"TINTA UV",10.00,34.80,50.00,15.20,30.40`
	if lines[1] != wantRow {
		t.Fatalf("row = %q\nwant %q", lines[1], wantRow)
	}
}

func TestCSV_QuotesEscaped(t *testing.T) {
	s := svc(`Placa "VIP", frente`, 1, 10, 5)
	out := string(CSV([]domain.Service{s}, All()))
	if !strings.Contains(out, `"Placa ""VIP"", frente"`) {
		t.Fatalf("embedded quotes/commas not escaped: %q", out)
	}
}

func TestCSV_RespectsRange(t *testing.T) {
	in := []domain.Service{svc("keep", 3, 10, 5), svc("drop", 9, 10, 5)}
	out := string(CSV(in, LastDays(now, 7)))
	if !strings.Contains(out, "keep") || strings.Contains(out, "drop") {
		t.Fatalf("range not applied to export: %q", out)
	}
}

func TestCSVFilename(t *testing.T) {
	got := CSVFilename(time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC))
	if got != "print-report-2026-03-15.csv" {
		t.Fatalf("filename = %q", got)
	}
}

func TestExcel_RoundTrip(t *testing.T) {
	in := []domain.Service{svc("Banner", 1, 50, 34.80)}
	b, err := Excel(in, All())
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	name, err := f.GetCellValue("Report", "B2")
	if err != nil {
		t.Fatal(err)
	}
	if name != "Banner" {
		t.Fatalf("B2 = %q, want Banner", name)
	}
	header, err := f.GetCellValue("Report", "J1")
	if err != nil {
		t.Fatal(err)
	}
	if header != "Margin" {
		t.Fatalf("J1 = %q, want Margin", header)
	}
}
