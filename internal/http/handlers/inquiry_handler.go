package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"handmade/internal/domain"
	applog "handmade/internal/log"
	"handmade/internal/services"
	"handmade/internal/validate"
	"handmade/internal/view"
)

const (
	InquirySentNotice   = "Thank you! Your inquiry has been sent."
	InquiryMissingField = "Please give your name and a way to reach you."
	ProductGoneNotice   = "This item is no longer available."
)

type InquiryHandler struct {
	State *StateStore
	Sync  *services.SyncService
}

// POST /inquiries
// The modal closes whatever the outcome; the result comes back as a notice.
func (h *InquiryHandler) Submit() fiber.Handler {
	return h.State.Update(func(c *fiber.Ctx, st *view.Session) error {
		st.CloseInquiry()

		id, _ := validate.ID(c.FormValue("product_id"))
		p, ok := h.Sync.Product(id)
		if !ok {
			st.Notice = ProductGoneNotice
			return nil
		}
		customer, okName := validate.Required(c.FormValue("customer"), 100)
		contact, okContact := validate.Required(c.FormValue("contact"), 100)
		if !okName || !okContact {
			st.Notice = InquiryMissingField
			return nil
		}
		in := domain.NewInquiry{
			Product:  p.Name,
			Customer: customer,
			Contact:  contact,
			Message:  strings.TrimSpace(c.FormValue("message")),
		}
		if err := h.Sync.AddInquiry(c.UserContext(), in); err != nil {
			applog.Error(c, "inquiry.submit.fail", err, map[string]any{"product": p.Name})
			st.Notice = err.Error()
			return nil
		}
		applog.Info(c, "inquiry.submit", map[string]any{"product": p.Name})
		st.Notice = InquirySentNotice
		return nil
	})
}
