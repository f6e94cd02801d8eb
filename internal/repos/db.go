package repos

import (
	"log"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB connects to a sqlite file (or ":memory:") or, for postgres:// DSNs,
// a hosted Postgres, and ensures the schema exists.
func OpenDB(dsn string) (*sqlx.DB, error) {
	driver := driverFor(dsn)
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// one connection: every :memory: connection is its own database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func driverFor(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "pgx"
	}
	return "sqlite"
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  price REAL NOT NULL CHECK (price >= 0),
  description TEXT NOT NULL DEFAULT '',
  image TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

CREATE TABLE IF NOT EXISTS inquiries(
  id TEXT PRIMARY KEY,
  product TEXT NOT NULL,
  customer TEXT NOT NULL,
  contact TEXT NOT NULL,
  message TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'New',
  created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);
CREATE INDEX IF NOT EXISTS idx_inquiries_created_at ON inquiries(created_at);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
  description TEXT NOT NULL DEFAULT '',
  image TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT to_char(now() AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS.US"Z"')
);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

CREATE TABLE IF NOT EXISTS inquiries(
  id TEXT PRIMARY KEY,
  product TEXT NOT NULL,
  customer TEXT NOT NULL,
  contact TEXT NOT NULL,
  message TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'New',
  created_at TEXT NOT NULL DEFAULT to_char(now() AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS.US"Z"')
);
CREATE INDEX IF NOT EXISTS idx_inquiries_created_at ON inquiries(created_at);
`

func ensureSchema(db *sqlx.DB) error {
	schema := sqliteSchema
	if db.DriverName() == "pgx" {
		schema = postgresSchema
	}
	_, err := db.Exec(schema)
	return err
}

// SeedIfEmpty inserts a few demo products when the catalog is empty.
func SeedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products")

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	rows := []map[string]any{
		{"id": "clay-bowl", "name": "Clay Bowl", "category": "Pottery", "price": 28.0,
			"description": "Wheel-thrown stoneware bowl with a speckled glaze.", "image": "/static/placeholder.svg",
			"created_at": "2024-03-01T10:00:00.000Z"},
		{"id": "bud-vase", "name": "Bud Vase", "category": "Pottery", "price": 18.5,
			"description": "Small vase for a single stem.", "image": "/static/placeholder.svg",
			"created_at": "2024-03-02T10:00:00.000Z"},
		{"id": "wool-throw", "name": "Wool Throw", "category": "Weaving", "price": 120.0,
			"description": "Hand-loomed throw in undyed wool.", "image": "/static/placeholder.svg",
			"created_at": "2024-03-03T10:00:00.000Z"},
	}
	for _, r := range rows {
		if _, err := tx.NamedExec(`
			INSERT INTO products(id, name, category, price, description, image, created_at)
			VALUES (:id, :name, :category, :price, :description, :image, :created_at)
		`, r); err != nil {
			return err
		}
	}
	return tx.Commit()
}
