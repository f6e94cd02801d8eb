package repos

import (
	"context"

	"handmade/internal/domain"
)

type ProductRepo struct{ gw Gateway }

func NewProductRepo(gw Gateway) *ProductRepo { return &ProductRepo{gw: gw} }

// List returns every product, newest first.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := r.gw.Select(ctx, TableProducts, &out, NewestFirst()); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProductRepo) Create(ctx context.Context, p domain.NewProduct) error {
	return r.gw.Insert(ctx, TableProducts, map[string]any{
		"name":        p.Name,
		"category":    p.Category,
		"price":       p.Price,
		"description": p.Description,
		"image":       p.Image,
	})
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.gw.Delete(ctx, TableProducts, Filter{Column: "id", Value: id})
}
