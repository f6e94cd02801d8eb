package handlers

import (
	"github.com/gofiber/fiber/v2"

	"handmade/internal/view"
)

type NavHandler struct {
	State *StateStore
}

// POST /nav/home
func (h *NavHandler) Home() fiber.Handler {
	return h.State.Update(func(c *fiber.Ctx, st *view.Session) error {
		st.Home()
		return nil
	})
}

// POST /nav/catalog
func (h *NavHandler) Catalog() fiber.Handler {
	return h.State.Update(func(c *fiber.Ctx, st *view.Session) error {
		st.Browse()
		return nil
	})
}

// POST /nav/admin
func (h *NavHandler) Admin() fiber.Handler {
	return h.State.Update(func(c *fiber.Ctx, st *view.Session) error {
		st.Admin()
		return nil
	})
}
