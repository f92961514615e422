package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status distinguishes a parked draft from a completed sale. Both are
// produced by the same validation and snapshot path.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusCompleted Status = "COMPLETED"
)

// SaleItem is a frozen copy of one cart line. Sales never share memory
// with the cart they came from.
type SaleItem struct {
	ProductID       string
	Name            string
	SKU             string
	UnitPrice       decimal.Decimal
	Quantity        int
	DiscountPercent decimal.Decimal
	TaxPercent      decimal.Decimal
	LineTotal       decimal.Decimal
}

// Sale is immutable once created.
type Sale struct {
	ID            string
	CustomerID    string
	CashierID     string
	PaymentMethod string
	Status        Status
	Currency      string
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalTax      decimal.Decimal
	GrandTotal    decimal.Decimal
	Items         []SaleItem
	CreatedAt     time.Time
}
