package handlers

import (
	"github.com/gofiber/fiber/v2"

	"handmade/internal/services"
	"handmade/internal/view"
)

type PageHandler struct {
	State *StateStore
	Sync  *services.SyncService
}

// GET /
func (h *PageHandler) Index(c *fiber.Ctx) error {
	st, sess, err := h.State.Load(c)
	if err != nil {
		return err
	}
	snap := h.Sync.Snapshot()
	if snap.Loading {
		return render(c, "loading", fiber.Map{"Loading": true, "Authenticated": st.Guard.Authenticated()})
	}

	current := st.View()
	notice, loginErr := st.Flash()
	data := fiber.Map{
		"View":          string(current),
		"Notice":        notice,
		"Authenticated": st.Guard.Authenticated(),
	}

	tmpl := "home"
	switch current {
	case view.Catalog:
		tmpl = "catalog"
		data["Categories"] = services.Categories(snap.Products)
		data["Category"] = st.Category
		data["Products"] = services.FilterByCategory(snap.Products, st.Category)
		data["InquiryFor"] = st.InquiryFor
	case view.AdminLogin:
		tmpl = "admin_login"
		data["LoginErr"] = loginErr
	case view.AdminDashboard:
		if st.PendingDelete != "" {
			tmpl = "confirm"
			data["Prompt"] = h.Sync.DeletePrompt(st.PendingDelete)
			data["ProductID"] = st.PendingDelete
			break
		}
		tmpl = "admin_dashboard"
		data["Products"] = snap.Products
		data["Inquiries"] = snap.Inquiries
		data["Categories"] = services.Categories(snap.Products)
		data["AddProductOpen"] = st.AddProductOpen
	}

	if err := h.State.Save(sess, st); err != nil {
		return err
	}
	return render(c, tmpl, data)
}

// Loading answers mutation routes while a refresh is in flight.
func loading(c *fiber.Ctx) error {
	return render(c.Status(fiber.StatusServiceUnavailable), "loading", fiber.Map{"Loading": true})
}
