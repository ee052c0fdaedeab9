package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "inkledger/internal/log"
	"inkledger/internal/reports"
	"inkledger/internal/services"
)

type ReportHandler struct {
	Reports *services.ReportService
}

// rangeFromQuery maps ?range=week|month|year|custom (with start/end dates in
// YYYY-MM-DD) to a report range; anything else means all time.
func rangeFromQuery(c *fiber.Ctx, now time.Time) reports.Range {
	switch c.Query("range") {
	case "week":
		return reports.LastDays(now, 7)
	case "month":
		return reports.LastMonths(now, 1)
	case "year":
		return reports.LastYears(now, 1)
	case "custom":
		start, _ := time.Parse("2006-01-02", c.Query("start"))
		end, _ := time.Parse("2006-01-02", c.Query("end"))
		return reports.Between(start, end)
	}
	return reports.All()
}

func (h *ReportHandler) Page(c *fiber.Ctx) error {
	u := currentUser(c)
	r := rangeFromQuery(c, time.Now())
	sum, err := h.Reports.Summary(u.ID, r)
	if err != nil {
		applog.Error(c, "reports.page.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not build the report"})
	}
	return render(c, "reports", fiber.Map{"Summary": sum, "Range": c.Query("range", "all")})
}

func (h *ReportHandler) ExportCSV(c *fiber.Ctx) error {
	u := currentUser(c)
	now := time.Now()
	data, err := h.Reports.ExportCSV(u.ID, rangeFromQuery(c, now))
	if err != nil {
		applog.Error(c, "reports.export.csv.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("Could not export the report")
	}
	applog.Audit(c, "reports.export.csv", map[string]any{"bytes": len(data)})
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+reports.CSVFilename(now)+`"`)
	return c.Send(data)
}

func (h *ReportHandler) ExportExcel(c *fiber.Ctx) error {
	u := currentUser(c)
	now := time.Now()
	data, err := h.Reports.ExportExcel(u.ID, rangeFromQuery(c, now))
	if err != nil {
		applog.Error(c, "reports.export.xlsx.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).SendString("Could not export the report")
	}
	applog.Audit(c, "reports.export.xlsx", map[string]any{"bytes": len(data)})
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+reports.ExcelFilename(now)+`"`)
	return c.Send(data)
}
