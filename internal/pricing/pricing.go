// Package pricing is the line-item calculator: pure functions from
// (unit price, quantity, discount %, tax %) to a monetary breakdown.
// Discount is applied before tax and tax is charged on the discounted
// base. That order is fixed; the cart's aggregate math depends on it.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidPercent  = errors.New("percent must be between 0 and 100")
)

var hundred = decimal.NewFromInt(100)

// Breakdown holds every intermediate value of one line's calculation.
// Amounts are exact decimals; rounding happens at the presentation edge.
type Breakdown struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableAmount  decimal.Decimal
	TaxAmount      decimal.Decimal
	LineTotal      decimal.Decimal
}

// ComputeLine derives a line total:
//
//	subtotal       = unitPrice × quantity
//	discountAmount = subtotal × discountPercent/100
//	taxableAmount  = subtotal − discountAmount
//	taxAmount      = taxableAmount × taxPercent/100
//	lineTotal      = taxableAmount + taxAmount
//
// Quantity below 1 or a percent outside [0,100] is rejected, never clamped.
func ComputeLine(unitPrice decimal.Decimal, quantity int, discountPercent, taxPercent decimal.Decimal) (Breakdown, error) {
	if quantity < 1 {
		return Breakdown{}, ErrInvalidQuantity
	}
	if !validPercent(discountPercent) || !validPercent(taxPercent) {
		return Breakdown{}, ErrInvalidPercent
	}

	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	discount := subtotal.Mul(discountPercent).Div(hundred)
	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(taxPercent).Div(hundred)

	return Breakdown{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxableAmount:  taxable,
		TaxAmount:      tax,
		LineTotal:      taxable.Add(tax),
	}, nil
}

func validPercent(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}
