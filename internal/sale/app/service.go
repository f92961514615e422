package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/kasir-pos/internal/sale/domain"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrMissingCustomer   = errors.New("no customer selected")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotFound          = errors.New("sale not found")
)

// Service finalizes carts into immutable sale records. Validation and
// persistence happen before the cart is touched, so a rejected checkout
// leaves the cart exactly as it was.
type Service struct {
	cart      CartSource
	catalog   CatalogReader
	customers CustomerDirectory
	repo      SaleRepo

	maxConcurrent int
}

func NewService(cart CartSource, catalog CatalogReader, customers CustomerDirectory, repo SaleRepo, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		cart:          cart,
		catalog:       catalog,
		customers:     customers,
		repo:          repo,
		maxConcurrent: maxConcurrent,
	}
}

type FinalizeRequest struct {
	CartID        string
	CashierID     string
	PaymentMethod string
	Draft         bool
}

// Finalize freezes the cart into a sale record and clears the cart.
// Empty carts and missing customers are rejected with nothing mutated.
func (s *Service) Finalize(ctx context.Context, req FinalizeRequest) (domain.Sale, error) {
	view, err := s.cart.View(ctx, req.CartID)
	if err != nil {
		return domain.Sale{}, err
	}

	if len(view.Lines) == 0 {
		return domain.Sale{}, ErrEmptyCart
	}

	if view.CustomerID == "" {
		return domain.Sale{}, ErrMissingCustomer
	}
	known, err := s.customers.Exists(ctx, view.CustomerID)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("verify customer %s: %w", view.CustomerID, err)
	}
	if !known {
		return domain.Sale{}, ErrMissingCustomer
	}

	if err := s.verifyStock(ctx, view.Lines); err != nil {
		return domain.Sale{}, err
	}

	status := domain.StatusCompleted
	if req.Draft {
		status = domain.StatusDraft
	}

	items := make([]domain.SaleItem, 0, len(view.Lines))
	for _, line := range view.Lines {
		items = append(items, domain.SaleItem{
			ProductID:       line.ProductID,
			Name:            line.Name,
			SKU:             line.SKU,
			UnitPrice:       line.UnitPrice,
			Quantity:        line.Quantity,
			DiscountPercent: line.DiscountPercent,
			TaxPercent:      line.TaxPercent,
			LineTotal:       line.LineTotal,
		})
	}

	sale := domain.Sale{
		ID:            uuid.NewString(),
		CustomerID:    view.CustomerID,
		CashierID:     req.CashierID,
		PaymentMethod: req.PaymentMethod,
		Status:        status,
		Currency:      view.Currency,
		Subtotal:      view.Subtotal,
		TotalDiscount: view.TotalDiscount,
		TotalTax:      view.TotalTax,
		GrandTotal:    view.GrandTotal,
		Items:         items,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, sale)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("persist sale: %w", err)
	}

	if err := s.cart.Clear(ctx, req.CartID); err != nil {
		return domain.Sale{}, fmt.Errorf("clear cart %s: %w", req.CartID, err)
	}

	return created, nil
}

// verifyStock re-resolves every line's product concurrently and checks
// on-hand stock covers the requested quantity. Read-only: a sale never
// mutates inventory.
func (s *Service) verifyStock(ctx context.Context, lines []CartLine) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for _, line := range lines {
		line := line
		g.Go(func() error {
			p, err := s.catalog.GetProduct(ctx, line.ProductID)
			if err != nil {
				return fmt.Errorf("verify product %s: %w", line.ProductID, err)
			}
			if p.StockOnHand < line.Quantity {
				return fmt.Errorf("product %s: have %d, want %d: %w", line.ProductID, p.StockOnHand, line.Quantity, ErrInsufficientStock)
			}
			return nil
		})
	}

	return g.Wait()
}

func (s *Service) GetSale(ctx context.Context, id string) (domain.Sale, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListSales(ctx context.Context, limit int) ([]domain.Sale, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, limit)
}
