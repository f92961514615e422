package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Money struct {
	Currency string
	Amount   decimal.Decimal
}

type Product struct {
	ID          string
	Name        string
	SKU         string
	Description string
	Price       Money
	StockOnHand int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
