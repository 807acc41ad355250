package handlers

import (
	"github.com/gofiber/fiber/v3"

	"home-designer/internal/designer/catalog"
)

// ============================================================
// Catalog Handlers
// ============================================================

func (h *Handler) Categories(c fiber.Ctx) error {
	categories, err := h.catalog.Categories(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(categories)
}

// SearchFurniture - GET /catalog/furniture?category=&subcategory=&q=&sort=.
func (h *Handler) SearchFurniture(c fiber.Ctx) error {
	sort, err := catalog.ParseSort(c.Query("sort"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	items, err := h.catalog.Search(c.Context(), catalog.Filter{
		Category:    c.Query("category"),
		Subcategory: c.Query("subcategory"),
		Query:       c.Query("q"),
		Sort:        sort,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(items)
}

func (h *Handler) GetFurniture(c fiber.Ctx) error {
	item, err := h.catalog.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(item)
}

func (h *Handler) Templates(c fiber.Ctx) error {
	templates, err := h.catalog.Templates(c.Context(), c.Query("category"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(templates)
}
