package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/kasir-pos/internal/sale/domain"
)

// CartLine mirrors one cart line at finalization time.
type CartLine struct {
	ProductID       string
	Name            string
	SKU             string
	UnitPrice       decimal.Decimal
	Quantity        int
	DiscountPercent decimal.Decimal
	TaxPercent      decimal.Decimal
	LineTotal       decimal.Decimal
}

// CartView is the finalizer's read of a cart: lines plus the aggregate
// totals the cart derived from them.
type CartView struct {
	CartID        string
	CustomerID    string
	Currency      string
	Lines         []CartLine
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalTax      decimal.Decimal
	GrandTotal    decimal.Decimal
}

// CartSource reads and clears the in-progress cart.
type CartSource interface {
	View(ctx context.Context, cartID string) (CartView, error)
	Clear(ctx context.Context, cartID string) error
}

// Product is the stock slice of a catalog record used for the
// pre-checkout verification pass.
type Product struct {
	ID          string
	StockOnHand int
}

// CatalogReader re-resolves products at checkout time.
type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

// CustomerDirectory validates the customer selection.
type CustomerDirectory interface {
	Exists(ctx context.Context, customerID string) (bool, error)
}

type SaleRepo interface {
	Create(ctx context.Context, sale domain.Sale) (domain.Sale, error)
	Get(ctx context.Context, id string) (domain.Sale, error)
	List(ctx context.Context, limit int) ([]domain.Sale, error)
}
