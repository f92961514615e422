package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dwikikusuma/kasir-pos/internal/customer/app"
	"github.com/dwikikusuma/kasir-pos/internal/customer/domain"
)

type CustomerRepo struct {
	db *sqlx.DB
}

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

type customerRow struct {
	ID        string    `db:"id"`
	Label     string    `db:"label"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *CustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	var rows []customerRow
	err := r.db.SelectContext(ctx, &rows, `SELECT id, label, created_at FROM customers ORDER BY label`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	out := make([]domain.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Customer{ID: row.ID, Label: row.Label, CreatedAt: row.CreatedAt})
	}
	return out, nil
}

func (r *CustomerRepo) Get(ctx context.Context, id string) (domain.Customer, error) {
	var row customerRow
	err := r.db.GetContext(ctx, &row, `SELECT id, label, created_at FROM customers WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Customer{}, fmt.Errorf("get customer %s: %w", id, err)
	}
	return domain.Customer{ID: row.ID, Label: row.Label, CreatedAt: row.CreatedAt}, nil
}
