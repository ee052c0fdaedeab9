package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "inkledger/internal/log"
	"inkledger/internal/reports"
	"inkledger/internal/services"
)

type DashboardHandler struct {
	Ledger  *services.LedgerService
	Reports *services.ReportService
}

func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	u := currentUser(c)

	svcs, err := h.Ledger.List(u.ID)
	if err != nil {
		applog.Error(c, "dashboard.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the dashboard"})
	}
	sum := reports.Summarize(svcs, reports.All())

	recent := svcs
	if len(recent) > 10 {
		recent = recent[:10]
	}
	return render(c, "dashboard", fiber.Map{"Summary": sum, "Services": recent})
}
