package adapter

import (
	"context"

	catalogapp "github.com/dwikikusuma/kasir-pos/internal/catalog/app"
	saleapp "github.com/dwikikusuma/kasir-pos/internal/sale/app"
)

// CatalogServiceReader adapts the catalog service to the finalizer's
// stock-verification port.
type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID string) (saleapp.Product, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	if err != nil {
		return saleapp.Product{}, err
	}
	return saleapp.Product{
		ID:          p.ID,
		StockOnHand: p.StockOnHand,
	}, nil
}
