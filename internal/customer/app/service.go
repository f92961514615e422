package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/kasir-pos/internal/customer/domain"
)

var ErrNotFound = errors.New("customer not found")

type Service struct {
	repo CustomerRepo
}

func NewService(repo CustomerRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.List(ctx)
}

// Exists reports whether the id resolves in the directory.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, nil
	}
	_, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
