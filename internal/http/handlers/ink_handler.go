package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"inkledger/internal/domain"
	applog "inkledger/internal/log"
	"inkledger/internal/services"
	"inkledger/internal/validate"
)

type InkHandler struct {
	Catalog *services.CatalogService
}

func (h *InkHandler) List(c *fiber.Ctx) error {
	u := currentUser(c)
	inks, err := h.Catalog.ListInks(u.ID)
	if err != nil {
		applog.Error(c, "inks.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load inks"})
	}
	return render(c, "inks", fiber.Map{"Inks": inks})
}

func (h *InkHandler) Save(c *fiber.Ctx) error {
	u := currentUser(c)

	cost, ok := validate.Money(c.FormValue("cost"))
	if !ok {
		return h.listWithErr(c, "Cost must be a non-negative number")
	}

	i := domain.Ink{
		ID:          c.FormValue("id"),
		Name:        c.FormValue("name"),
		Color:       c.FormValue("color"),
		CostPerML:   cost,
		Supplier:    c.FormValue("supplier"),
		Description: c.FormValue("description"),
	}

	saved, err := h.Catalog.SaveInk(u.ID, i)
	if err != nil {
		if ve, ok := services.AsValidation(err); ok {
			return h.listWithErr(c, ve.Msg)
		}
		applog.Error(c, "inks.save.fail", err, map[string]any{"ink": i.ID})
		return h.listWithErr(c, "Could not save the ink. Please try again.")
	}
	applog.Audit(c, "inks.save", map[string]any{"ink": saved.ID})
	return c.Redirect("/inks")
}

func (h *InkHandler) Delete(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.FormValue("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing id")
	}
	if err := h.Catalog.DeleteInk(u.ID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Ink not found"})
		}
		applog.Error(c, "inks.delete.fail", err, map[string]any{"ink": id})
		return c.Status(fiber.StatusInternalServerError).SendString("Could not delete ink")
	}
	applog.Audit(c, "inks.delete", map[string]any{"ink": id})
	return c.Redirect("/inks")
}

func (h *InkHandler) listWithErr(c *fiber.Ctx, msg string) error {
	u := currentUser(c)
	inks, _ := h.Catalog.ListInks(u.ID)
	return c.Status(fiber.StatusBadRequest).Render("inks", fiber.Map{
		"Inks":      inks,
		"Err":       msg,
		"User":      u,
		"CSRFToken": c.Cookies("csrf_"),
	})
}
