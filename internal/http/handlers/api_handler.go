package handlers

import (
	"github.com/gofiber/fiber/v2"

	"handmade/internal/services"
)

type APIHandler struct {
	State *StateStore
	Sync  *services.SyncService
}

// GET /api/v1/products?category=
func (h *APIHandler) Products(c *fiber.Ctx) error {
	snap := h.Sync.Snapshot()
	category := c.Query("category", services.AllCategories)
	return c.JSON(fiber.Map{
		"loading":    snap.Loading,
		"categories": services.Categories(snap.Products),
		"category":   category,
		"products":   services.FilterByCategory(snap.Products, category),
	})
}

// GET /api/v1/inquiries (admin session)
func (h *APIHandler) Inquiries(c *fiber.Ctx) error {
	snap := h.Sync.Snapshot()
	return c.JSON(fiber.Map{"loading": snap.Loading, "inquiries": snap.Inquiries})
}

// GET /healthz
func (h *APIHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true, "loading": h.Sync.Loading()})
}
