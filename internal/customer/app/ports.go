package app

import (
	"context"

	"github.com/dwikikusuma/kasir-pos/internal/customer/domain"
)

type CustomerRepo interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, id string) (domain.Customer, error)
}
