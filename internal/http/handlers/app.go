package handlers

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	applog "handmade/internal/log"
	"handmade/web"
)

type AppConfig struct {
	CookieSecure bool
	LoginMax     int
	LoginWindow  time.Duration
	// AccessLog receives the request log lines; nil means stdout.
	AccessLog io.Writer
}

func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code = fe.Code
		msg = "Sorry, that request could not be handled."
	}
	applog.Error(c, "server.error", err, map[string]any{"status": code})
	// Avoid leaking internals; best-effort render
	if rerr := notFound(c, code, msg); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}

// NewApp builds the storefront: middleware, embedded views and assets, and
// every route.
func NewApp(d *Deps, cfg AppConfig) *fiber.App {
	if cfg.LoginMax < 1 {
		cfg.LoginMax = 5
	}
	if cfg.LoginWindow <= 0 {
		cfg.LoginWindow = 10 * time.Minute
	}
	if cfg.AccessLog == nil {
		cfg.AccessLog = os.Stdout
	}

	app := fiber.New(fiber.Config{
		Views:                 web.Engine(),
		BodyLimit:             1 << 20,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Output: cfg.AccessLog}))
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
		ContextKey:     "csrf",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"reason": err.Error()})
			return notFound(c, fiber.StatusForbidden, "Security check failed. Please refresh and try again.")
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	app.Use("/static", filesystem.New(filesystem.Config{Root: web.Static(), MaxAge: 3600}))

	Register(app, d, cfg)

	app.Use(func(c *fiber.Ctx) error {
		return notFound(c, fiber.StatusNotFound, "Page not found")
	})
	return app
}

// Register wires every storefront route onto app.
func Register(app *fiber.App, d *Deps, cfg AppConfig) {
	admin := RequireAdmin(d.State)
	ready := BlockWhileLoading(d.Sync)

	app.Get("/", d.PageHandler.Index)

	// Navigation
	app.Post("/nav/home", d.NavHandler.Home())
	app.Post("/nav/catalog", d.NavHandler.Catalog())
	app.Post("/nav/admin", d.NavHandler.Admin())

	// Catalog & inquiries
	app.Post("/catalog/filter", d.CatalogHandler.Filter())
	app.Post("/catalog/inquire/close", d.CatalogHandler.CloseInquiry())
	app.Post("/catalog/inquire/:id", ready, d.CatalogHandler.OpenInquiry())
	app.Post("/inquiries", ready, d.InquiryHandler.Submit())

	// Auth routes (login throttled)
	app.Post("/admin/login", limiter.New(limiter.Config{
		Max:          cfg.LoginMax,
		Expiration:   cfg.LoginWindow,
		LimitReached: d.AuthHandler.LoginLimited,
	}), d.AuthHandler.Login())
	app.Post("/admin/logout", d.AuthHandler.Logout())

	// Admin
	products := app.Group("/admin/products", admin, ready)
	products.Post("/new", d.AdminHandler.OpenAdd())
	products.Post("/new/close", d.AdminHandler.CloseAdd())
	products.Post("/", d.AdminHandler.AddProduct())
	products.Post("/:id/delete", d.AdminHandler.DeleteProduct())

	// API
	api := app.Group("/api/v1")
	api.Get("/products", d.APIHandler.Products)
	api.Get("/inquiries", RequireAdminJSON(d.State), d.APIHandler.Inquiries)

	app.Get("/healthz", d.APIHandler.Health)
}
