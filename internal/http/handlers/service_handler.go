package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"inkledger/internal/domain"
	applog "inkledger/internal/log"
	"inkledger/internal/services"
	"inkledger/internal/validate"
)

type ServiceHandler struct {
	Ledger  *services.LedgerService
	Catalog *services.CatalogService
}

func (h *ServiceHandler) New(c *fiber.Ctx) error {
	u := currentUser(c)
	materials, err := h.Catalog.ListMaterials(u.ID)
	if err != nil {
		applog.Error(c, "services.form.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the catalog"})
	}
	inks, err := h.Catalog.ListInks(u.ID)
	if err != nil {
		applog.Error(c, "services.form.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the catalog"})
	}
	return render(c, "service_form", fiber.Map{"Materials": materials, "Inks": inks})
}

func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	u := currentUser(c)
	in, ok := h.parseInput(c)
	if !ok {
		return h.formWithErr(c, "Quantities and prices must be non-negative numbers")
	}

	svc, err := h.Ledger.Create(u.ID, in)
	if err != nil {
		if ve, ok := services.AsValidation(err); ok {
			return h.formWithErr(c, ve.Msg)
		}
		applog.Error(c, "services.create.fail", err, nil)
		return h.formWithErr(c, "Could not record the service. Please try again.")
	}
	applog.Audit(c, "services.create", map[string]any{"service": svc.ID, "total": svc.TotalCost})
	return c.Redirect("/")
}

func (h *ServiceHandler) Edit(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Query("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing id")
	}
	svc, err := h.Ledger.Get(u.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Service not found"})
		}
		applog.Error(c, "services.edit.fail", err, map[string]any{"service": id})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the service"})
	}
	materials, _ := h.Catalog.ListMaterials(u.ID)
	inks, _ := h.Catalog.ListInks(u.ID)
	return render(c, "service_form", fiber.Map{"Materials": materials, "Inks": inks, "Service": svc})
}

func (h *ServiceHandler) Update(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.FormValue("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing id")
	}
	in, ok := h.parseInput(c)
	if !ok {
		return h.formWithErr(c, "Quantities and prices must be non-negative numbers")
	}

	svc, err := h.Ledger.Update(u.ID, id, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Service not found"})
		}
		if ve, ok := services.AsValidation(err); ok {
			return h.formWithErr(c, ve.Msg)
		}
		applog.Error(c, "services.update.fail", err, map[string]any{"service": id})
		return h.formWithErr(c, "Could not save the service. Please try again.")
	}
	applog.Audit(c, "services.update", map[string]any{"service": svc.ID, "total": svc.TotalCost})
	return c.Redirect("/")
}

// Quote powers the live cost preview: same inputs as Create, but nothing is
// validated beyond number parsing and nothing is persisted.
func (h *ServiceHandler) Quote(c *fiber.Ctx) error {
	u := currentUser(c)
	in, ok := h.parseInput(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid numeric input"})
	}
	q, err := h.Ledger.Quote(u.ID, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown catalog item"})
		}
		applog.Error(c, "services.quote.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not compute quote"})
	}
	return c.JSON(fiber.Map{
		"materialCost": q.MaterialCost,
		"inkCost":      q.InkCost,
		"otherCost":    q.OtherCost,
		"totalCost":    q.TotalCost,
		"profit":       q.Profit,
		"margin":       q.Margin,
	})
}

func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.FormValue("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing id")
	}
	if err := h.Ledger.Delete(u.ID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Service not found"})
		}
		applog.Error(c, "services.delete.fail", err, map[string]any{"service": id})
		return c.Status(fiber.StatusInternalServerError).SendString("Could not delete service")
	}
	applog.Audit(c, "services.delete", map[string]any{"service": id})
	return c.Redirect("/")
}

func (h *ServiceHandler) parseInput(c *fiber.Ctx) (services.ServiceInput, bool) {
	matQty, ok1 := validate.Quantity(c.FormValue("material_qty"))
	inkQty, ok2 := validate.Quantity(c.FormValue("ink_qty"))
	salePrice, ok3 := validate.Money(c.FormValue("sale_price"))
	if !ok1 || !ok2 || !ok3 {
		return services.ServiceInput{}, false
	}

	in := services.ServiceInput{
		Name:        c.FormValue("name"),
		MaterialID:  c.FormValue("material_id"),
		MaterialQty: matQty,
		InkID:       c.FormValue("ink_id"),
		InkQty:      inkQty,
		SalePrice:   salePrice,
	}

	descs := c.Request().PostArgs().PeekMulti("other_desc")
	values := c.Request().PostArgs().PeekMulti("other_value")
	for i := range values {
		v, ok := validate.Money(string(values[i]))
		if !ok {
			return services.ServiceInput{}, false
		}
		line := domain.CostLine{Value: v}
		if i < len(descs) {
			line.Description = string(descs[i])
		}
		in.OtherCosts = append(in.OtherCosts, line)
	}
	return in, true
}

func (h *ServiceHandler) formWithErr(c *fiber.Ctx, msg string) error {
	u := currentUser(c)
	materials, _ := h.Catalog.ListMaterials(u.ID)
	inks, _ := h.Catalog.ListInks(u.ID)
	return c.Status(fiber.StatusBadRequest).Render("service_form", fiber.Map{
		"Materials": materials,
		"Inks":      inks,
		"Err":       msg,
		"User":      u,
		"CSRFToken": c.Cookies("csrf_"),
	})
}
