package adapter

import (
	"context"
	"errors"

	cartapp "github.com/dwikikusuma/kasir-pos/internal/cart/app"
	catalogapp "github.com/dwikikusuma/kasir-pos/internal/catalog/app"
)

// CatalogServiceReader adapts the catalog service to the cart's
// CatalogReader port.
type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID string) (cartapp.ProductInfo, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	if errors.Is(err, catalogapp.ErrNotFound) || errors.Is(err, catalogapp.ErrInvalidInput) {
		return cartapp.ProductInfo{}, cartapp.ErrProductNotFound
	}
	if err != nil {
		return cartapp.ProductInfo{}, err
	}

	return cartapp.ProductInfo{
		ID:       p.ID,
		Name:     p.Name,
		SKU:      p.SKU,
		Currency: p.Price.Currency,
		Price:    p.Price.Amount,
	}, nil
}
