package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/kasir-pos/internal/pricing"
)

type fakeCatalog struct {
	products map[string]ProductInfo
}

func (f *fakeCatalog) GetProduct(ctx context.Context, productID string) (ProductInfo, error) {
	p, ok := f.products[productID]
	if !ok {
		return ProductInfo{}, ErrProductNotFound
	}
	return p, nil
}

func newTestService() *Service {
	catalog := &fakeCatalog{products: map[string]ProductInfo{
		"p-1": {ID: "p-1", Name: "Espresso Beans", SKU: "COF-001", Currency: "USD", Price: decimal.RequireFromString("25.99")},
		"p-2": {ID: "p-2", Name: "Filter Paper", SKU: "COF-002", Currency: "USD", Price: decimal.RequireFromString("3.49")},
	}}
	return NewService(catalog, decimal.NewFromInt(10))
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	cartID := svc.CreateCart(ctx).CartID

	t.Run("unknown product -> ErrProductNotFound", func(t *testing.T) {
		_, err := svc.AddItem(ctx, cartID, "ghost")
		if !errors.Is(err, ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("unknown cart -> ErrCartNotFound", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "nope", "p-1")
		if !errors.Is(err, ErrCartNotFound) {
			t.Fatalf("expected ErrCartNotFound, got %v", err)
		}
	})

	t.Run("add snapshots the unit price and applies defaults", func(t *testing.T) {
		snap, err := svc.AddItem(ctx, cartID, "p-1")
		if err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
		if len(snap.Lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(snap.Lines))
		}
		line := snap.Lines[0]
		if line.Quantity != 1 || !line.TaxPercent.Equal(decimal.NewFromInt(10)) {
			t.Fatalf("unexpected defaults: %+v", line)
		}
		if !line.UnitPrice.Amount.Equal(decimal.RequireFromString("25.99")) {
			t.Fatalf("unit price = %s", line.UnitPrice.Amount)
		}
	})

	t.Run("second add increments the same line", func(t *testing.T) {
		snap, err := svc.AddItem(ctx, cartID, "p-1")
		if err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
		if len(snap.Lines) != 1 || snap.Lines[0].Quantity != 2 {
			t.Fatalf("expected one merged line with quantity 2, got %+v", snap.Lines)
		}
	})
}

func TestUpdateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	cartID := svc.CreateCart(ctx).CartID
	if _, err := svc.AddItem(ctx, cartID, "p-1"); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	t.Run("invalid quantity leaves the line unchanged", func(t *testing.T) {
		before, _ := svc.Snapshot(ctx, cartID)
		_, err := svc.SetQuantity(ctx, cartID, "p-1", 0)
		if !errors.Is(err, pricing.ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
		after, _ := svc.Snapshot(ctx, cartID)
		if before.Lines[0].Quantity != after.Lines[0].Quantity {
			t.Fatalf("quantity mutated by rejected update")
		}
	})

	t.Run("invalid percent is rejected", func(t *testing.T) {
		_, err := svc.SetDiscountPercent(ctx, cartID, "p-1", decimal.NewFromInt(120))
		if !errors.Is(err, pricing.ErrInvalidPercent) {
			t.Fatalf("expected ErrInvalidPercent, got %v", err)
		}
	})
}

func TestCartsAreIndependent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	a := svc.CreateCart(ctx).CartID
	b := svc.CreateCart(ctx).CartID

	if _, err := svc.AddItem(ctx, a, "p-1"); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := svc.AddItem(ctx, b, "p-2"); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	snapA, _ := svc.Snapshot(ctx, a)
	snapB, _ := svc.Snapshot(ctx, b)
	if snapA.Lines[0].ProductID != "p-1" || snapB.Lines[0].ProductID != "p-2" {
		t.Fatalf("carts leaked into each other: %+v / %+v", snapA.Lines, snapB.Lines)
	}
}

func TestDiscard(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	cartID := svc.CreateCart(ctx).CartID

	svc.Discard(ctx, cartID)
	if _, err := svc.Snapshot(ctx, cartID); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound after discard, got %v", err)
	}

	// Discarding again is a no-op.
	svc.Discard(ctx, cartID)
}
