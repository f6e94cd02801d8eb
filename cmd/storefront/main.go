package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"

	"handmade/internal/config"
	"handmade/internal/http/handlers"
	applog "handmade/internal/log"
	"handmade/internal/repos"
	"handmade/internal/services"
	"handmade/internal/sessionstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
			log.SetOutput(out)
		}
	}
	applog.Init(applog.Options{Console: !cfg.IsProduction() && cfg.LogFile == "", Writer: out})

	gw, err := openGateway(cfg)
	if err != nil {
		log.Fatal(err)
	}
	sync := services.NewSyncService(repos.NewProductRepo(gw), repos.NewInquiryRepo(gw))

	auth, err := services.NewAuthService(services.AdminSecret)
	if err != nil {
		log.Fatal(err)
	}

	sessCfg := session.Config{
		Expiration:     cfg.SessionTTL,
		CookieSecure:   cfg.CookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}
	if cfg.SessionRedisURL != "" {
		store, err := sessionstore.Config{URL: cfg.SessionRedisURL, DialTimeout: 5 * time.Second}.New()
		if err != nil {
			log.Fatalf("session redis: %v", err)
		}
		defer store.Close()
		sessCfg.Storage = store
		log.Printf("[session] redis storage")
	}

	// Initial load before accepting connections.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.GatewayTimeout+5*time.Second)
	if err := sync.Refresh(ctx); err != nil {
		log.Printf("[warn] initial refresh: %v", err)
	}
	cancel()

	deps := handlers.NewDeps(sync, auth, session.New(sessCfg))
	app := handlers.NewApp(deps, handlers.AppConfig{
		CookieSecure: cfg.CookieSecure,
		LoginMax:     cfg.LoginRateMax,
		LoginWindow:  cfg.LoginRateWindow,
		AccessLog:    out,
	})

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port, "gateway": cfg.Gateway})
	log.Fatal(app.Listen(":" + cfg.Port))
}

func openGateway(cfg config.Config) (repos.Gateway, error) {
	if cfg.Gateway == "rest" {
		log.Printf("[gateway] rest -> %s", config.Redact(cfg.GatewayURL))
		return repos.NewRESTGateway(cfg.GatewayURL, cfg.GatewayKey, cfg.GatewayTimeout), nil
	}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	if cfg.SeedDemo {
		if err := repos.SeedIfEmpty(db); err != nil {
			return nil, err
		}
	}
	log.Printf("[gateway] sql -> %s", config.Redact(cfg.DBDSN))
	return repos.NewSQLGateway(db), nil
}
