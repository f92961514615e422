package app

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductInfo is the slice of a catalog product the cart needs at add
// time.
type ProductInfo struct {
	ID       string
	Name     string
	SKU      string
	Currency string
	Price    decimal.Decimal
}

// CatalogReader resolves products for AddItem. Implementations return
// ErrProductNotFound when the id does not resolve.
type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (ProductInfo, error)
}
