package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/kasir-pos/internal/cart/app"
	saleapp "github.com/dwikikusuma/kasir-pos/internal/sale/app"
)

// CartServiceSource adapts the cart service to the finalizer's
// CartSource port.
type CartServiceSource struct {
	svc *cartapp.Service
}

func NewCartServiceSource(svc *cartapp.Service) *CartServiceSource {
	return &CartServiceSource{svc: svc}
}

func (s *CartServiceSource) View(ctx context.Context, cartID string) (saleapp.CartView, error) {
	snap, err := s.svc.Snapshot(ctx, cartID)
	if err != nil {
		return saleapp.CartView{}, err
	}

	lines := make([]saleapp.CartLine, 0, len(snap.Lines))
	for _, ln := range snap.Lines {
		lines = append(lines, saleapp.CartLine{
			ProductID:       ln.ProductID,
			Name:            ln.Name,
			SKU:             ln.SKU,
			UnitPrice:       ln.UnitPrice.Amount,
			Quantity:        ln.Quantity,
			DiscountPercent: ln.DiscountPercent,
			TaxPercent:      ln.TaxPercent,
			LineTotal:       ln.LineTotal.Amount,
		})
	}

	return saleapp.CartView{
		CartID:        snap.CartID,
		CustomerID:    snap.CustomerID,
		Currency:      snap.Totals.GrandTotal.Currency,
		Lines:         lines,
		Subtotal:      snap.Totals.Subtotal.Amount,
		TotalDiscount: snap.Totals.TotalDiscount.Amount,
		TotalTax:      snap.Totals.TotalTax.Amount,
		GrandTotal:    snap.Totals.GrandTotal.Amount,
	}, nil
}

func (s *CartServiceSource) Clear(ctx context.Context, cartID string) error {
	return s.svc.Clear(ctx, cartID)
}
