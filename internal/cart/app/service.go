package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/kasir-pos/internal/cart/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrCartNotFound    = errors.New("cart not found")
)

// Service owns the in-progress checkout carts. Each cart belongs to one
// session and is operated on by one caller at a time; the mutex only
// guards the registry itself.
type Service struct {
	catalog    CatalogReader
	defaultTax decimal.Decimal

	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func NewService(catalog CatalogReader, defaultTaxPercent decimal.Decimal) *Service {
	return &Service{
		catalog:    catalog,
		defaultTax: defaultTaxPercent,
		carts:      make(map[string]*domain.Cart),
	}
}

// CreateCart opens a new empty cart and returns its snapshot.
func (s *Service) CreateCart(ctx context.Context) domain.Snapshot {
	cart := domain.NewCart(uuid.NewString())

	s.mu.Lock()
	s.carts[cart.ID] = cart
	s.mu.Unlock()

	return cart.Snapshot()
}

// AddItem resolves the product and merges it into the cart: an existing
// line gains one unit, a new line starts at quantity 1 with the
// configured default tax percent.
func (s *Service) AddItem(ctx context.Context, cartID, productID string) (domain.Snapshot, error) {
	cart, err := s.cart(cartID)
	if err != nil {
		return domain.Snapshot{}, err
	}

	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("resolve product %s: %w", productID, err)
	}

	snap := domain.ProductSnapshot{
		ProductID: p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		UnitPrice: domain.Money{Currency: p.Currency, Amount: p.Price},
	}
	if err := cart.AddLine(snap, s.defaultTax); err != nil {
		return domain.Snapshot{}, err
	}
	return cart.Snapshot(), nil
}

func (s *Service) SetQuantity(ctx context.Context, cartID, productID string, qty int) (domain.Snapshot, error) {
	return s.update(cartID, func(c *domain.Cart) error {
		return c.SetQuantity(productID, qty)
	})
}

func (s *Service) SetDiscountPercent(ctx context.Context, cartID, productID string, pct decimal.Decimal) (domain.Snapshot, error) {
	return s.update(cartID, func(c *domain.Cart) error {
		return c.SetDiscountPercent(productID, pct)
	})
}

func (s *Service) SetTaxPercent(ctx context.Context, cartID, productID string, pct decimal.Decimal) (domain.Snapshot, error) {
	return s.update(cartID, func(c *domain.Cart) error {
		return c.SetTaxPercent(productID, pct)
	})
}

// RemoveItem deletes the product's line. Removing an absent product is
// not an error.
func (s *Service) RemoveItem(ctx context.Context, cartID, productID string) (domain.Snapshot, error) {
	return s.update(cartID, func(c *domain.Cart) error {
		c.RemoveLine(productID)
		return nil
	})
}

func (s *Service) SetCustomer(ctx context.Context, cartID, customerID string) (domain.Snapshot, error) {
	return s.update(cartID, func(c *domain.Cart) error {
		c.SetCustomer(customerID)
		return nil
	})
}

// Snapshot returns the read-only view hosts render from.
func (s *Service) Snapshot(ctx context.Context, cartID string) (domain.Snapshot, error) {
	cart, err := s.cart(cartID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return cart.Snapshot(), nil
}

// Clear empties a cart in place; the finalizer calls this after a
// successful checkout.
func (s *Service) Clear(ctx context.Context, cartID string) error {
	cart, err := s.cart(cartID)
	if err != nil {
		return err
	}
	cart.Clear()
	return nil
}

// Discard drops the cart entirely. Discarding an unknown cart is a
// no-op; there is nothing else to cancel.
func (s *Service) Discard(ctx context.Context, cartID string) {
	s.mu.Lock()
	delete(s.carts, cartID)
	s.mu.Unlock()
}

func (s *Service) update(cartID string, fn func(*domain.Cart) error) (domain.Snapshot, error) {
	cart, err := s.cart(cartID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if err := fn(cart); err != nil {
		return domain.Snapshot{}, err
	}
	return cart.Snapshot(), nil
}

func (s *Service) cart(cartID string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[cartID]
	if !ok {
		return nil, ErrCartNotFound
	}
	return cart, nil
}
