package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"handmade/internal/domain"
	applog "handmade/internal/log"
	"handmade/internal/services"
	"handmade/internal/validate"
	"handmade/internal/view"
)

const (
	ProductAddedNotice   = "Product added."
	ProductDeletedNotice = "Product deleted."
	ProductFieldsNotice  = "Name, category and a non-negative price are required."
	ProductImageNotice   = "Image must be a URL or a /path."
)

type AdminHandler struct {
	State *StateStore
	Sync  *services.SyncService
}

// POST /admin/products/new
func (h *AdminHandler) OpenAdd() fiber.Handler {
	return h.State.Update(func(c *fiber.Ctx, st *view.Session) error {
		st.AddProductOpen = true
		return nil
	})
}

// POST /admin/products/new/close
func (h *AdminHandler) CloseAdd() fiber.Handler {
	return h.State.Update(func(c *fiber.Ctx, st *view.Session) error {
		st.AddProductOpen = false
		return nil
	})
}

// POST /admin/products
// On failure the modal stays open and the gateway message is shown.
func (h *AdminHandler) AddProduct() fiber.Handler {
	return h.State.Update(func(c *fiber.Ctx, st *view.Session) error {
		name, okName := validate.Required(c.FormValue("name"), 120)
		category, okCat := validate.Required(c.FormValue("category"), 80)
		price, okPrice := validate.Price(c.FormValue("price"))
		if !okName || !okCat || !okPrice {
			st.Notice = ProductFieldsNotice
			return nil
		}
		image, okImage := validate.Image(c.FormValue("image"))
		if !okImage {
			st.Notice = ProductImageNotice
			return nil
		}
		p := domain.NewProduct{
			Name:        name,
			Category:    category,
			Price:       price,
			Description: strings.TrimSpace(c.FormValue("description")),
			Image:       image,
		}
		if err := h.Sync.AddProduct(c.UserContext(), p); err != nil {
			applog.Error(c, "admin.product.add.fail", err, map[string]any{"name": name})
			st.Notice = err.Error()
			return nil
		}
		applog.Audit(c, "admin.product.add", map[string]any{"name": name, "category": category, "price": price})
		st.AddProductOpen = false
		st.Notice = ProductAddedNotice
		return nil
	})
}

// POST /admin/products/:id/delete
// Without a confirm answer for the pending product this only raises the
// prompt; confirm=yes deletes and confirm=no drops it.
func (h *AdminHandler) DeleteProduct() fiber.Handler {
	return h.State.Update(func(c *fiber.Ctx, st *view.Session) error {
		id, ok := validate.ID(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
		}
		answer := c.FormValue("confirm")
		if answer == "" || st.PendingDelete != id {
			st.PendingDelete = id
			return nil
		}
		st.PendingDelete = ""

		err := h.Sync.DeleteProduct(c.UserContext(), id, services.ConfirmFunc(func(string) bool {
			return answer == "yes"
		}))
		switch {
		case errors.Is(err, services.ErrDeleteDeclined):
			return nil
		case err != nil:
			applog.Error(c, "admin.product.delete.fail", err, map[string]any{"product_id": id})
			st.Notice = err.Error()
			return nil
		}
		applog.Audit(c, "admin.product.delete", map[string]any{"product_id": id})
		st.Notice = ProductDeletedNotice
		return nil
	})
}
