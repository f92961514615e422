package app

import (
	"context"

	"github.com/dwikikusuma/kasir-pos/internal/catalog/domain"
)

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Product, error)
}
