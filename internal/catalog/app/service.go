package app

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/kasir-pos/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) CreateProduct(ctx context.Context, name, sku, desc, currency string, price decimal.Decimal, stock int) (domain.Product, error) {
	name = strings.TrimSpace(name)
	sku = strings.TrimSpace(sku)
	currency = strings.TrimSpace(currency)

	if name == "" || sku == "" || currency == "" || price.IsNegative() || stock < 0 {
		return domain.Product{}, ErrInvalidInput
	}

	p := domain.Product{
		Name:        name,
		SKU:         sku,
		Description: desc,
		Price: domain.Money{
			Currency: currency,
			Amount:   price,
		},
		StockOnHand: stock,
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

// SearchProducts matches the query as a case-insensitive substring of the
// product name or SKU. Result ordering is not significant.
func (s *Service) SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.Search(ctx, strings.TrimSpace(query), limit)
}

// exportLimit bounds full-catalog reads. A single register's catalog
// stays far below this.
const exportLimit = 10000

// AllProducts returns the whole catalog, for exports.
func (s *Service) AllProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.Search(ctx, "", exportLimit)
}
