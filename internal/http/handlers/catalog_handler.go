package handlers

import (
	"github.com/gofiber/fiber/v2"

	"handmade/internal/validate"
	"handmade/internal/view"
)

type CatalogHandler struct {
	State *StateStore
}

// POST /catalog/filter
func (h *CatalogHandler) Filter() fiber.Handler {
	return h.State.Update(func(c *fiber.Ctx, st *view.Session) error {
		st.SetCategory(validate.Optional(c.FormValue("category"), 80))
		st.CloseInquiry()
		st.Browse()
		return nil
	})
}

// POST /catalog/inquire/:id
func (h *CatalogHandler) OpenInquiry() fiber.Handler {
	return h.State.Update(func(c *fiber.Ctx, st *view.Session) error {
		id, ok := validate.ID(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
		}
		st.OpenInquiry(id)
		return nil
	})
}

// POST /catalog/inquire/close
func (h *CatalogHandler) CloseInquiry() fiber.Handler {
	return h.State.Update(func(c *fiber.Ctx, st *view.Session) error {
		st.CloseInquiry()
		return nil
	})
}
