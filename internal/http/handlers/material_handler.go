package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"inkledger/internal/domain"
	applog "inkledger/internal/log"
	"inkledger/internal/services"
	"inkledger/internal/validate"
)

type MaterialHandler struct {
	Catalog *services.CatalogService
}

func (h *MaterialHandler) List(c *fiber.Ctx) error {
	u := currentUser(c)
	materials, err := h.Catalog.ListMaterials(u.ID)
	if err != nil {
		applog.Error(c, "materials.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load materials"})
	}
	return render(c, "materials", fiber.Map{"Materials": materials})
}

func (h *MaterialHandler) Save(c *fiber.Ctx) error {
	u := currentUser(c)

	cost, ok := validate.Money(c.FormValue("cost"))
	if !ok {
		return h.listWithErr(c, "Cost must be a non-negative number")
	}
	category, _ := validate.Category(c.FormValue("category"))

	m := domain.Material{
		ID:          c.FormValue("id"),
		Name:        c.FormValue("name"),
		Category:    category,
		CostPerUnit: cost,
		Supplier:    c.FormValue("supplier"),
		Description: c.FormValue("description"),
	}

	saved, err := h.Catalog.SaveMaterial(u.ID, m)
	if err != nil {
		if ve, ok := services.AsValidation(err); ok {
			return h.listWithErr(c, ve.Msg)
		}
		applog.Error(c, "materials.save.fail", err, map[string]any{"material": m.ID})
		return h.listWithErr(c, "Could not save the material. Please try again.")
	}
	applog.Audit(c, "materials.save", map[string]any{"material": saved.ID})
	return c.Redirect("/materials")
}

func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.FormValue("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing id")
	}
	if err := h.Catalog.DeleteMaterial(u.ID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Material not found"})
		}
		applog.Error(c, "materials.delete.fail", err, map[string]any{"material": id})
		return c.Status(fiber.StatusInternalServerError).SendString("Could not delete material")
	}
	applog.Audit(c, "materials.delete", map[string]any{"material": id})
	return c.Redirect("/materials")
}

func (h *MaterialHandler) listWithErr(c *fiber.Ctx, msg string) error {
	u := currentUser(c)
	materials, _ := h.Catalog.ListMaterials(u.ID)
	return c.Status(fiber.StatusBadRequest).Render("materials", fiber.Map{
		"Materials": materials,
		"Err":       msg,
		"User":      u,
		"CSRFToken": c.Cookies("csrf_"),
	})
}
