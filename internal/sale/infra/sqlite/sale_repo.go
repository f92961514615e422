package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/kasir-pos/internal/sale/app"
	"github.com/dwikikusuma/kasir-pos/internal/sale/domain"
)

type SaleRepo struct {
	db *sqlx.DB
}

func NewSaleRepo(db *sqlx.DB) *SaleRepo {
	return &SaleRepo{db: db}
}

type saleRow struct {
	ID            string          `db:"id"`
	CustomerID    string          `db:"customer_id"`
	CashierID     string          `db:"cashier_id"`
	PaymentMethod string          `db:"payment_method"`
	Status        string          `db:"status"`
	Currency      string          `db:"currency"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	TotalDiscount decimal.Decimal `db:"total_discount"`
	TotalTax      decimal.Decimal `db:"total_tax"`
	GrandTotal    decimal.Decimal `db:"grand_total"`
	CreatedAt     time.Time       `db:"created_at"`
}

type saleItemRow struct {
	SaleID          string          `db:"sale_id"`
	ProductID       string          `db:"product_id"`
	Name            string          `db:"name"`
	SKU             string          `db:"sku"`
	UnitPrice       decimal.Decimal `db:"unit_price"`
	Quantity        int             `db:"quantity"`
	DiscountPercent decimal.Decimal `db:"discount_percent"`
	TaxPercent      decimal.Decimal `db:"tax_percent"`
	LineTotal       decimal.Decimal `db:"line_total"`
	Position        int             `db:"position"`
}

// Create writes the sale and its items in one transaction.
func (r *SaleRepo) Create(ctx context.Context, sale domain.Sale) (domain.Sale, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("begin sale tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO sales (id, customer_id, cashier_id, payment_method, status, currency,
			subtotal, total_discount, total_tax, grand_total, created_at)
		VALUES (:id, :customer_id, :cashier_id, :payment_method, :status, :currency,
			:subtotal, :total_discount, :total_tax, :grand_total, :created_at)`,
		saleRow{
			ID:            sale.ID,
			CustomerID:    sale.CustomerID,
			CashierID:     sale.CashierID,
			PaymentMethod: sale.PaymentMethod,
			Status:        string(sale.Status),
			Currency:      sale.Currency,
			Subtotal:      sale.Subtotal,
			TotalDiscount: sale.TotalDiscount,
			TotalTax:      sale.TotalTax,
			GrandTotal:    sale.GrandTotal,
			CreatedAt:     sale.CreatedAt,
		})
	if err != nil {
		return domain.Sale{}, fmt.Errorf("insert sale: %w", err)
	}

	for i, item := range sale.Items {
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO sale_items (sale_id, product_id, name, sku, unit_price, quantity,
				discount_percent, tax_percent, line_total, position)
			VALUES (:sale_id, :product_id, :name, :sku, :unit_price, :quantity,
				:discount_percent, :tax_percent, :line_total, :position)`,
			saleItemRow{
				SaleID:          sale.ID,
				ProductID:       item.ProductID,
				Name:            item.Name,
				SKU:             item.SKU,
				UnitPrice:       item.UnitPrice,
				Quantity:        item.Quantity,
				DiscountPercent: item.DiscountPercent,
				TaxPercent:      item.TaxPercent,
				LineTotal:       item.LineTotal,
				Position:        i,
			})
		if err != nil {
			return domain.Sale{}, fmt.Errorf("insert sale item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Sale{}, fmt.Errorf("commit sale: %w", err)
	}

	return sale, nil
}

func (r *SaleRepo) Get(ctx context.Context, id string) (domain.Sale, error) {
	var row saleRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, customer_id, cashier_id, payment_method, status, currency,
			subtotal, total_discount, total_tax, grand_total, created_at
		FROM sales WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Sale{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Sale{}, fmt.Errorf("get sale %s: %w", id, err)
	}

	items, err := r.items(ctx, id)
	if err != nil {
		return domain.Sale{}, err
	}

	return toDomain(row, items), nil
}

func (r *SaleRepo) List(ctx context.Context, limit int) ([]domain.Sale, error) {
	var rows []saleRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, customer_id, cashier_id, payment_method, status, currency,
			subtotal, total_discount, total_tax, grand_total, created_at
		FROM sales ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	out := make([]domain.Sale, 0, len(rows))
	for _, row := range rows {
		items, err := r.items(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toDomain(row, items))
	}
	return out, nil
}

func (r *SaleRepo) items(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	var rows []saleItemRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT sale_id, product_id, name, sku, unit_price, quantity,
			discount_percent, tax_percent, line_total, position
		FROM sale_items WHERE sale_id = ? ORDER BY position`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list items of sale %s: %w", saleID, err)
	}

	out := make([]domain.SaleItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.SaleItem{
			ProductID:       row.ProductID,
			Name:            row.Name,
			SKU:             row.SKU,
			UnitPrice:       row.UnitPrice,
			Quantity:        row.Quantity,
			DiscountPercent: row.DiscountPercent,
			TaxPercent:      row.TaxPercent,
			LineTotal:       row.LineTotal,
		})
	}
	return out, nil
}

func toDomain(row saleRow, items []domain.SaleItem) domain.Sale {
	return domain.Sale{
		ID:            row.ID,
		CustomerID:    row.CustomerID,
		CashierID:     row.CashierID,
		PaymentMethod: row.PaymentMethod,
		Status:        domain.Status(row.Status),
		Currency:      row.Currency,
		Subtotal:      row.Subtotal,
		TotalDiscount: row.TotalDiscount,
		TotalTax:      row.TotalTax,
		GrandTotal:    row.GrandTotal,
		Items:         items,
		CreatedAt:     row.CreatedAt,
	}
}
