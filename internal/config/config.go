package config

import (
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env  string `envconfig:"APP_ENV" default:"development"`
	Port string `envconfig:"PORT" default:"8080"`

	// Gateway selects the data backend: "sql" (sqlite file or postgres DSN) or "rest".
	Gateway        string        `envconfig:"GATEWAY" default:"sql"`
	DBDSN          string        `envconfig:"DB_DSN" default:"storefront.db"`
	GatewayURL     string        `envconfig:"GATEWAY_URL"`
	GatewayKey     string        `envconfig:"GATEWAY_KEY"`
	GatewayTimeout time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"10s"`
	SeedDemo       bool          `envconfig:"SEED_DEMO" default:"true"`

	LogFile string `envconfig:"LOG_FILE"`

	SessionRedisURL string        `envconfig:"SESSION_REDIS_URL"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	CookieSecure    bool          `envconfig:"COOKIE_SECURE" default:"false"`

	LoginRateMax    int           `envconfig:"LOGIN_RATE_MAX" default:"5"`
	LoginRateWindow time.Duration `envconfig:"LOGIN_RATE_WINDOW" default:"10m"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err == nil {
		log.Printf("[config] loaded .env")
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	log.Printf("[config] APP_ENV=%s PORT=%s GATEWAY=%s DB_DSN=%s GATEWAY_URL=%s LOG_FILE=%s",
		cfg.Env, cfg.Port, cfg.Gateway, Redact(cfg.DBDSN), Redact(cfg.GatewayURL), cfg.LogFile)
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Gateway {
	case "sql":
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required when GATEWAY=sql")
		}
	case "rest":
		if c.GatewayURL == "" {
			return fmt.Errorf("GATEWAY_URL is required when GATEWAY=rest")
		}
	default:
		return fmt.Errorf("unknown GATEWAY %q (want sql or rest)", c.Gateway)
	}
	if c.LoginRateMax < 1 {
		return fmt.Errorf("LOGIN_RATE_MAX must be at least 1")
	}
	return nil
}

func (c Config) IsProduction() bool { return c.Env == "production" }

// Redact masks the password in a URL-style DSN; anything else (a sqlite
// path) is returned unchanged.
func Redact(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}
