// Package domain holds the cart aggregate: an ordered collection of line
// items, one per product, whose per-line and cart-wide totals are
// re-derived from scratch after every mutation. The aggregate is
// single-session and does no I/O; hosts re-read Snapshot after each call.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/kasir-pos/internal/pricing"
)

var ErrLineNotFound = errors.New("line not found in cart")

type Money struct {
	Currency string
	Amount   decimal.Decimal
}

// ProductSnapshot is what the cart keeps of a resolved product. Unit
// price is frozen at add time; later catalog changes do not reprice
// lines already in the cart.
type ProductSnapshot struct {
	ProductID string
	Name      string
	SKU       string
	UnitPrice Money
}

// LineItem is owned exclusively by the cart. LineTotal is derived from
// the other fields and never set directly; a stale value is a defect.
type LineItem struct {
	ProductID       string
	Name            string
	SKU             string
	UnitPrice       Money
	Quantity        int
	DiscountPercent decimal.Decimal
	TaxPercent      decimal.Decimal
	LineTotal       Money
}

// Totals are the cart-wide sums, always equal to a full recomputation
// over the current lines.
type Totals struct {
	Subtotal      Money
	TotalDiscount Money
	TotalTax      Money
	GrandTotal    Money
}

// Snapshot is the read-only view handed to hosts: deep copies only.
type Snapshot struct {
	CartID     string
	CustomerID string
	Lines      []LineItem
	Totals     Totals
}

type Cart struct {
	ID         string
	CustomerID string

	items map[string]*LineItem
	order []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewCart(id string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		ID:        id,
		items:     make(map[string]*LineItem),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddLine merges or creates: an existing line for the product gains one
// unit, otherwise a new line starts at quantity 1 with no discount and
// the given default tax percent. A failed recomputation mutates nothing.
func (c *Cart) AddLine(p ProductSnapshot, defaultTaxPercent decimal.Decimal) error {
	if item, ok := c.items[p.ProductID]; ok {
		b, err := pricing.ComputeLine(item.UnitPrice.Amount, item.Quantity+1, item.DiscountPercent, item.TaxPercent)
		if err != nil {
			return err
		}
		item.Quantity++
		item.LineTotal = Money{Currency: item.UnitPrice.Currency, Amount: b.LineTotal}
		c.touch()
		return nil
	}

	b, err := pricing.ComputeLine(p.UnitPrice.Amount, 1, decimal.Zero, defaultTaxPercent)
	if err != nil {
		return err
	}

	c.items[p.ProductID] = &LineItem{
		ProductID:       p.ProductID,
		Name:            p.Name,
		SKU:             p.SKU,
		UnitPrice:       p.UnitPrice,
		Quantity:        1,
		DiscountPercent: decimal.Zero,
		TaxPercent:      defaultTaxPercent,
		LineTotal:       Money{Currency: p.UnitPrice.Currency, Amount: b.LineTotal},
	}
	c.order = append(c.order, p.ProductID)
	c.touch()
	return nil
}

func (c *Cart) SetQuantity(productID string, qty int) error {
	return c.updateLine(productID, func(item *LineItem) (pricing.Breakdown, error) {
		b, err := pricing.ComputeLine(item.UnitPrice.Amount, qty, item.DiscountPercent, item.TaxPercent)
		if err != nil {
			return pricing.Breakdown{}, err
		}
		item.Quantity = qty
		return b, nil
	})
}

func (c *Cart) SetDiscountPercent(productID string, pct decimal.Decimal) error {
	return c.updateLine(productID, func(item *LineItem) (pricing.Breakdown, error) {
		b, err := pricing.ComputeLine(item.UnitPrice.Amount, item.Quantity, pct, item.TaxPercent)
		if err != nil {
			return pricing.Breakdown{}, err
		}
		item.DiscountPercent = pct
		return b, nil
	})
}

func (c *Cart) SetTaxPercent(productID string, pct decimal.Decimal) error {
	return c.updateLine(productID, func(item *LineItem) (pricing.Breakdown, error) {
		b, err := pricing.ComputeLine(item.UnitPrice.Amount, item.Quantity, item.DiscountPercent, pct)
		if err != nil {
			return pricing.Breakdown{}, err
		}
		item.TaxPercent = pct
		return b, nil
	})
}

// updateLine recomputes before assigning so a rejected value leaves the
// line exactly as it was.
func (c *Cart) updateLine(productID string, apply func(*LineItem) (pricing.Breakdown, error)) error {
	item, ok := c.items[productID]
	if !ok {
		return ErrLineNotFound
	}

	b, err := apply(item)
	if err != nil {
		return err
	}

	item.LineTotal = Money{Currency: item.UnitPrice.Currency, Amount: b.LineTotal}
	c.touch()
	return nil
}

// RemoveLine deletes the product's line. Removing an absent product is
// a no-op.
func (c *Cart) RemoveLine(productID string) {
	if _, ok := c.items[productID]; !ok {
		return
	}
	delete(c.items, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.touch()
}

func (c *Cart) SetCustomer(customerID string) {
	c.CustomerID = customerID
	c.touch()
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// Clear returns the cart to its empty state.
func (c *Cart) Clear() {
	c.items = make(map[string]*LineItem)
	c.order = nil
	c.CustomerID = ""
	c.touch()
}

// Lines returns copies of the line items in insertion order.
func (c *Cart) Lines() []LineItem {
	out := make([]LineItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}

// Totals re-derives the aggregate sums from the lines, in insertion
// order. Nothing is cached between calls.
func (c *Cart) Totals() Totals {
	subtotal := decimal.Zero
	totalDiscount := decimal.Zero
	totalTax := decimal.Zero
	currency := ""

	for _, id := range c.order {
		item := c.items[id]
		if currency == "" {
			currency = item.UnitPrice.Currency
		}

		// Lines only exist with values ComputeLine accepted.
		b, err := pricing.ComputeLine(item.UnitPrice.Amount, item.Quantity, item.DiscountPercent, item.TaxPercent)
		if err != nil {
			panic("cart: line with invalid pricing inputs: " + err.Error())
		}

		subtotal = subtotal.Add(b.Subtotal)
		totalDiscount = totalDiscount.Add(b.DiscountAmount)
		totalTax = totalTax.Add(b.TaxAmount)
	}

	return Totals{
		Subtotal:      Money{Currency: currency, Amount: subtotal},
		TotalDiscount: Money{Currency: currency, Amount: totalDiscount},
		TotalTax:      Money{Currency: currency, Amount: totalTax},
		GrandTotal:    Money{Currency: currency, Amount: subtotal.Sub(totalDiscount).Add(totalTax)},
	}
}

// Snapshot deep-copies the cart state for rendering or finalization.
func (c *Cart) Snapshot() Snapshot {
	return Snapshot{
		CartID:     c.ID,
		CustomerID: c.CustomerID,
		Lines:      c.Lines(),
		Totals:     c.Totals(),
	}
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now().UTC()
}
