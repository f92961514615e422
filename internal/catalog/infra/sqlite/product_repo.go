package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/kasir-pos/internal/catalog/app"
	"github.com/dwikikusuma/kasir-pos/internal/catalog/domain"
)

type ProductRepo struct {
	db *sqlx.DB
}

func NewProductRepo(db *sqlx.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

type productRow struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	SKU         string          `db:"sku"`
	Description string          `db:"description"`
	Currency    string          `db:"currency"`
	Price       decimal.Decimal `db:"price"`
	StockOnHand int             `db:"stock_on_hand"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	now := time.Now().UTC()
	row := productRow{
		ID:          uuid.NewString(),
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Currency:    p.Price.Currency,
		Price:       p.Price.Amount,
		StockOnHand: p.StockOnHand,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO products (id, name, sku, description, currency, price, stock_on_hand, created_at, updated_at)
		VALUES (:id, :name, :sku, :description, :currency, :price, :stock_on_hand, :created_at, :updated_at)`, row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return toDomain(row), nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var row productRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, name, sku, description, currency, price, stock_on_hand, created_at, updated_at
		FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return toDomain(row), nil
}

func (r *ProductRepo) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	pattern := "%" + query + "%"

	var rows []productRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, sku, description, currency, price, stock_on_hand, created_at, updated_at
		FROM products
		WHERE name LIKE ? COLLATE NOCASE OR sku LIKE ? COLLATE NOCASE
		LIMIT ?`, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomain(row))
	}
	return out, nil
}

func toDomain(row productRow) domain.Product {
	return domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		SKU:         row.SKU,
		Description: row.Description,
		Price: domain.Money{
			Currency: row.Currency,
			Amount:   row.Price,
		},
		StockOnHand: row.StockOnHand,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
