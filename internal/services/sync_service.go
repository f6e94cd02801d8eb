package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"handmade/internal/domain"
	applog "handmade/internal/log"
)

var ErrDeleteDeclined = errors.New("delete not confirmed")

type ProductStore interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, p domain.NewProduct) error
	Delete(ctx context.Context, id string) error
}

type InquiryStore interface {
	List(ctx context.Context) ([]domain.Inquiry, error)
	Create(ctx context.Context, in domain.NewInquiry, status string) error
}

// Confirmer answers the yes/no prompt shown before a delete.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

type Snapshot struct {
	Products  []domain.Product
	Inquiries []domain.Inquiry
	Loading   bool

	// Generation of the refresh that produced this snapshot; 0 before the first.
	Generation uint64
}

// SyncService owns the in-memory product and inquiry collections. Readers
// only ever see whole snapshots; every product mutation re-fetches both.
type SyncService struct {
	Products  ProductStore
	Inquiries InquiryStore

	mu        sync.RWMutex
	products  []domain.Product
	inquiries []domain.Inquiry
	ready     bool
	inflight  int
	issued    uint64
	applied   uint64
}

func NewSyncService(products ProductStore, inquiries InquiryStore) *SyncService {
	return &SyncService{
		Products:  products,
		Inquiries: inquiries,
		products:  []domain.Product{},
		inquiries: []domain.Inquiry{},
	}
}

// Refresh fetches both collections in parallel and replaces them wholesale.
// A failed fetch leaves that collection empty for this round. A response is
// dropped if a newer Refresh was issued while it was in flight.
func (s *SyncService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.issued++
	gen := s.issued
	s.inflight++
	s.mu.Unlock()

	var (
		products  []domain.Product
		inquiries []domain.Inquiry
		pErr      error
		iErr      error
	)
	var g errgroup.Group
	g.Go(func() error {
		products, pErr = s.Products.List(ctx)
		return nil
	})
	g.Go(func() error {
		inquiries, iErr = s.Inquiries.List(ctx)
		return nil
	})
	_ = g.Wait()

	if pErr != nil {
		applog.Error(nil, "sync.products.fetch.fail", pErr, nil)
		products = nil
	}
	if iErr != nil {
		applog.Error(nil, "sync.inquiries.fetch.fail", iErr, nil)
		inquiries = nil
	}
	if products == nil {
		products = []domain.Product{}
	}
	if inquiries == nil {
		inquiries = []domain.Inquiry{}
	}

	s.mu.Lock()
	s.inflight--
	stale := gen < s.issued
	if !stale {
		s.products = products
		s.inquiries = inquiries
		s.applied = gen
		s.ready = true
	}
	s.mu.Unlock()

	applog.Info(nil, "sync.refresh", map[string]any{
		"generation": gen,
		"stale":      stale,
		"products":   len(products),
		"inquiries":  len(inquiries),
	})
	return errors.Join(pErr, iErr)
}

// Loading is true until the first refresh lands and while any is in flight.
func (s *SyncService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.ready || s.inflight > 0
}

func (s *SyncService) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Products:   append(make([]domain.Product, 0, len(s.products)), s.products...),
		Inquiries:  append(make([]domain.Inquiry, 0, len(s.inquiries)), s.inquiries...),
		Loading:    !s.ready || s.inflight > 0,
		Generation: s.applied,
	}
}

// Product looks a product up in the current snapshot.
func (s *SyncService) Product(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if string(p.ID) == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (s *SyncService) AddProduct(ctx context.Context, p domain.NewProduct) error {
	if strings.TrimSpace(p.Image) == "" {
		p.Image = domain.DefaultImage
	}
	if err := s.Products.Create(ctx, p); err != nil {
		return err
	}
	_ = s.Refresh(ctx)
	return nil
}

// DeletePrompt is the question put to the Confirmer before deleting id.
func (s *SyncService) DeletePrompt(id string) string {
	if p, ok := s.Product(id); ok {
		return fmt.Sprintf("Delete %q?", p.Name)
	}
	return fmt.Sprintf("Delete product %s?", id)
}

// DeleteProduct asks c before touching the gateway; a "no" returns
// ErrDeleteDeclined.
func (s *SyncService) DeleteProduct(ctx context.Context, id string, c Confirmer) error {
	if c == nil || !c.Confirm(s.DeletePrompt(id)) {
		return ErrDeleteDeclined
	}
	if err := s.Products.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.Refresh(ctx)
	return nil
}

// AddInquiry stores the inquiry as "New". The inquiry list is not
// re-fetched; it catches up on the next refresh.
func (s *SyncService) AddInquiry(ctx context.Context, in domain.NewInquiry) error {
	return s.Inquiries.Create(ctx, in, domain.InquiryStatusNew)
}
