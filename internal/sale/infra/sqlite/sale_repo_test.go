package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/kasir-pos/internal/database"
	"github.com/dwikikusuma/kasir-pos/internal/sale/app"
	"github.com/dwikikusuma/kasir-pos/internal/sale/domain"
)

func newRepo(t *testing.T) *SaleRepo {
	t.Helper()
	db, err := database.Connect(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewSaleRepo(db)
}

func sampleSale() domain.Sale {
	return domain.Sale{
		ID:            uuid.NewString(),
		CustomerID:    "cust-1",
		CashierID:     "cashier-1",
		PaymentMethod: "cash",
		Status:        domain.StatusCompleted,
		Currency:      "USD",
		Subtotal:      decimal.RequireFromString("51.98"),
		TotalDiscount: decimal.RequireFromString("25.99"),
		TotalTax:      decimal.RequireFromString("2.599"),
		GrandTotal:    decimal.RequireFromString("28.589"),
		Items: []domain.SaleItem{
			{
				ProductID:       "p-1",
				Name:            "Espresso Beans",
				SKU:             "COF-001",
				UnitPrice:       decimal.RequireFromString("25.99"),
				Quantity:        2,
				DiscountPercent: decimal.RequireFromString("50"),
				TaxPercent:      decimal.RequireFromString("10"),
				LineTotal:       decimal.RequireFromString("28.589"),
			},
			{
				ProductID:       "p-2",
				Name:            "Filter Paper",
				SKU:             "COF-002",
				UnitPrice:       decimal.RequireFromString("3.49"),
				Quantity:        1,
				DiscountPercent: decimal.Zero,
				TaxPercent:      decimal.RequireFromString("10"),
				LineTotal:       decimal.RequireFromString("3.839"),
			},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestSaleRoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	sale := sampleSale()
	if _, err := repo.Create(ctx, sale); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.Get(ctx, sale.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if got.CustomerID != sale.CustomerID || got.Status != sale.Status || got.Currency != sale.Currency {
		t.Fatalf("metadata mismatch: %+v", got)
	}
	if !got.GrandTotal.Equal(sale.GrandTotal) {
		t.Fatalf("grand total = %s, want %s", got.GrandTotal, sale.GrandTotal)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	// Items keep insertion order.
	if got.Items[0].ProductID != "p-1" || got.Items[1].ProductID != "p-2" {
		t.Fatalf("item order lost: %+v", got.Items)
	}
	if !got.Items[0].LineTotal.Equal(decimal.RequireFromString("28.589")) {
		t.Fatalf("item line total = %s", got.Items[0].LineTotal)
	}
}

func TestGetUnknownSale(t *testing.T) {
	repo := newRepo(t)
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSalesLimit(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		sale := sampleSale()
		sale.ID = uuid.NewString()
		sale.CreatedAt = sale.CreatedAt.Add(time.Duration(i) * time.Second)
		if _, err := repo.Create(ctx, sale); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	got, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sales, got %d", len(got))
	}
}
