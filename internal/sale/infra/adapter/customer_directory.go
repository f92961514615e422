package adapter

import (
	"context"

	customerapp "github.com/dwikikusuma/kasir-pos/internal/customer/app"
)

// CustomerServiceDirectory adapts the customer service to the
// finalizer's CustomerDirectory port.
type CustomerServiceDirectory struct {
	svc *customerapp.Service
}

func NewCustomerServiceDirectory(svc *customerapp.Service) *CustomerServiceDirectory {
	return &CustomerServiceDirectory{svc: svc}
}

func (d *CustomerServiceDirectory) Exists(ctx context.Context, customerID string) (bool, error) {
	return d.svc.Exists(ctx, customerID)
}
