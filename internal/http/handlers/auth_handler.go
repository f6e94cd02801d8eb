package handlers

import (
	"github.com/gofiber/fiber/v2"

	"handmade/internal/log"
	"handmade/internal/services"
	"handmade/internal/view"
)

const TooManyAttempts = "Too many attempts. Please try again later."

type AuthHandler struct {
	State *StateStore
	Auth  *services.AuthService
}

// POST /admin/login
func (h *AuthHandler) Login() fiber.Handler {
	return h.State.Update(func(c *fiber.Ctx, st *view.Session) error {
		if !st.Login(h.Auth, c.FormValue("password")) {
			log.Security(c, "auth.login.fail", nil)
			return nil
		}
		log.Audit(c, "auth.login.success", nil)
		return nil
	})
}

// LoginLimited renders the login screen when the limiter trips.
func (h *AuthHandler) LoginLimited(c *fiber.Ctx) error {
	log.Security(c, "rate.login.hit", nil)
	return render(c.Status(fiber.StatusTooManyRequests), "admin_login", fiber.Map{
		"View":     string(view.AdminLogin),
		"LoginErr": TooManyAttempts,
	})
}

// POST /admin/logout
func (h *AuthHandler) Logout() fiber.Handler {
	return h.State.Update(func(c *fiber.Ctx, st *view.Session) error {
		st.Logout()
		log.Audit(c, "auth.logout", nil)
		return nil
	})
}
