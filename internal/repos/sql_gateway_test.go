package repos_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"handmade/internal/domain"
	"handmade/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLGatewaySelectNewestFirst(t *testing.T) {
	db := memdb(t)
	db.MustExec(`INSERT INTO products(id,name,category,price,description,image,created_at) VALUES
	  ('a','Old Mug','Pottery',10,'','','2024-01-01T00:00:00.000Z'),
	  ('b','New Rug','Weaving',90,'','','2024-02-01T00:00:00.000Z'),
	  ('c','Mid Jar','Pottery',15,'','','2024-01-15T00:00:00.000Z')`)

	gw := repos.NewSQLGateway(db)
	var out []domain.Product
	if err := gw.Select(context.Background(), repos.TableProducts, &out, repos.NewestFirst()); err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[0].ID != "b" || out[1].ID != "c" || out[2].ID != "a" {
		t.Fatalf("bad order: %+v", out)
	}

	var pottery []domain.Product
	q := repos.NewestFirst()
	q.Filters = []repos.Filter{{Column: "category", Value: "Pottery"}}
	if err := gw.Select(context.Background(), repos.TableProducts, &pottery, q); err != nil {
		t.Fatal(err)
	}
	if len(pottery) != 2 {
		t.Fatalf("want 2 pottery rows, got %d", len(pottery))
	}
}

func TestSQLGatewayInsertAssignsIDAndTimestamp(t *testing.T) {
	db := memdb(t)
	repo := repos.NewProductRepo(repos.NewSQLGateway(db))
	ctx := context.Background()

	err := repo.Create(ctx, domain.NewProduct{Name: "Clay Bowl", Category: "Pottery", Price: 28, Image: domain.DefaultImage})
	if err != nil {
		t.Fatal(err)
	}
	got, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 product, got %d", len(got))
	}
	if got[0].ID == "" || got[0].CreatedAt == "" {
		t.Fatalf("backend fields not assigned: %+v", got[0])
	}
	if got[0].Name != "Clay Bowl" || got[0].Price != 28 {
		t.Fatalf("unexpected row: %+v", got[0])
	}

	if err := repo.Delete(ctx, string(got[0].ID)); err != nil {
		t.Fatal(err)
	}
	got, _ = repo.List(ctx)
	if len(got) != 0 {
		t.Fatalf("delete left rows: %+v", got)
	}
}

func TestSQLGatewayInquiryRow(t *testing.T) {
	db := memdb(t)
	repo := repos.NewInquiryRepo(repos.NewSQLGateway(db))
	ctx := context.Background()

	in := domain.NewInquiry{Product: "Clay Bowl", Customer: "Asha", Contact: "555-0100"}
	if err := repo.Create(ctx, in, domain.InquiryStatusNew); err != nil {
		t.Fatal(err)
	}
	got, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Status != "New" || got[0].Customer != "Asha" || got[0].Message != "" {
		t.Fatalf("unexpected inquiries: %+v", got)
	}
}

func TestSQLGatewayRejectsUnknownNames(t *testing.T) {
	gw := repos.NewSQLGateway(memdb(t))
	ctx := context.Background()

	var out []domain.Product
	err := gw.Select(ctx, "users", &out, repos.Query{})
	var gwErr *repos.GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("want GatewayError, got %v", err)
	}

	q := repos.Query{Order: []repos.Order{{Column: "name; DROP TABLE products"}}}
	if err := gw.Select(ctx, repos.TableProducts, &out, q); err == nil {
		t.Fatal("expected unknown column error")
	}
	if err := gw.Insert(ctx, repos.TableProducts, map[string]any{"secret": 1}); err == nil {
		t.Fatal("expected unknown column error on insert")
	}
	if err := gw.Delete(ctx, repos.TableProducts); err == nil {
		t.Fatal("expected unfiltered delete to be refused")
	}
}

func TestSQLGatewaySurfacesBackendMessage(t *testing.T) {
	gw := repos.NewSQLGateway(memdb(t))
	// price violates CHECK (price >= 0)
	err := gw.Insert(context.Background(), repos.TableProducts, map[string]any{
		"name": "Broken", "category": "Pottery", "price": -1.0,
	})
	if err == nil {
		t.Fatal("expected constraint failure")
	}
	if err.Error() == "" {
		t.Fatal("gateway message should not be empty")
	}
}

func TestSeedIfEmptyIsIdempotent(t *testing.T) {
	db := memdb(t)
	if err := repos.SeedIfEmpty(db); err != nil {
		t.Fatal(err)
	}
	if err := repos.SeedIfEmpty(db); err != nil {
		t.Fatal(err)
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("want 3 seeded products, got %d", n)
	}
}
