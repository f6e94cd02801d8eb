package handlers

import (
	applog "handmade/internal/log"
	"handmade/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin lets the request through only when the session's admin gate
// is open.
func RequireAdmin(state *StateStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !state.Authenticated(c) {
			applog.Security(c, "access.denied.admin", nil)
			return notFound(c, fiber.StatusForbidden, "Access denied")
		}
		return c.Next()
	}
}

// RequireAdminJSON is RequireAdmin for the JSON API.
func RequireAdminJSON(state *StateStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !state.Authenticated(c) {
			applog.Security(c, "access.denied.admin", nil)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin session required"})
		}
		return c.Next()
	}
}

// BlockWhileLoading keeps mutations unreachable until the current refresh
// settles.
func BlockWhileLoading(sync *services.SyncService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sync.Loading() {
			return loading(c)
		}
		return c.Next()
	}
}
