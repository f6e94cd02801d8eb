package repos

import (
	"context"

	"handmade/internal/domain"
)

type InquiryRepo struct{ gw Gateway }

func NewInquiryRepo(gw Gateway) *InquiryRepo { return &InquiryRepo{gw: gw} }

// List returns every inquiry, newest first.
func (r *InquiryRepo) List(ctx context.Context) ([]domain.Inquiry, error) {
	var out []domain.Inquiry
	if err := r.gw.Select(ctx, TableInquiries, &out, NewestFirst()); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *InquiryRepo) Create(ctx context.Context, in domain.NewInquiry, status string) error {
	return r.gw.Insert(ctx, TableInquiries, map[string]any{
		"product":  in.Product,
		"customer": in.Customer,
		"contact":  in.Contact,
		"message":  in.Message,
		"status":   status,
	})
}
