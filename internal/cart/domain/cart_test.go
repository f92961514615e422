package domain

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/kasir-pos/internal/pricing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var defaultTax = decimal.NewFromInt(10)

func beans() ProductSnapshot {
	return ProductSnapshot{
		ProductID: "p-1",
		Name:      "Espresso Beans",
		SKU:       "COF-001",
		UnitPrice: Money{Currency: "USD", Amount: dec("25.99")},
	}
}

func mustAdd(t *testing.T, c *Cart, p ProductSnapshot) {
	t.Helper()
	if err := c.AddLine(p, defaultTax); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}
}

func TestAddLineMergesDuplicates(t *testing.T) {
	c := NewCart("c-1")
	mustAdd(t, c, beans())
	mustAdd(t, c, beans())

	if c.Len() != 1 {
		t.Fatalf("expected 1 line after double add, got %d", c.Len())
	}
	line := c.Lines()[0]
	if line.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", line.Quantity)
	}
	if !line.LineTotal.Amount.Equal(dec("57.178")) {
		t.Fatalf("line total = %s, want 57.178", line.LineTotal.Amount)
	}
}

func TestAddLineDefaults(t *testing.T) {
	c := NewCart("c-1")
	mustAdd(t, c, beans())

	line := c.Lines()[0]
	if line.Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", line.Quantity)
	}
	if !line.DiscountPercent.IsZero() {
		t.Fatalf("discount = %s, want 0", line.DiscountPercent)
	}
	if !line.TaxPercent.Equal(defaultTax) {
		t.Fatalf("tax = %s, want %s", line.TaxPercent, defaultTax)
	}
	if !line.LineTotal.Amount.Equal(dec("28.589")) {
		t.Fatalf("line total = %s, want 28.589", line.LineTotal.Amount)
	}
}

func TestSetQuantityRejectsInvalid(t *testing.T) {
	c := NewCart("c-1")
	mustAdd(t, c, beans())
	before := c.Lines()[0]

	for _, qty := range []int{0, -2} {
		if err := c.SetQuantity("p-1", qty); err != pricing.ErrInvalidQuantity {
			t.Fatalf("SetQuantity(%d): expected ErrInvalidQuantity, got %v", qty, err)
		}
	}

	after := c.Lines()[0]
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("line mutated by rejected update: %+v != %+v", before, after)
	}
}

func TestSetPercentRejectsOutOfRange(t *testing.T) {
	c := NewCart("c-1")
	mustAdd(t, c, beans())
	before := c.Lines()[0]

	if err := c.SetDiscountPercent("p-1", dec("101")); err != pricing.ErrInvalidPercent {
		t.Fatalf("expected ErrInvalidPercent, got %v", err)
	}
	if err := c.SetTaxPercent("p-1", dec("-0.5")); err != pricing.ErrInvalidPercent {
		t.Fatalf("expected ErrInvalidPercent, got %v", err)
	}

	after := c.Lines()[0]
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("line mutated by rejected update: %+v != %+v", before, after)
	}
}

func TestUpdateUnknownLine(t *testing.T) {
	c := NewCart("c-1")
	if err := c.SetQuantity("ghost", 2); err != ErrLineNotFound {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}
}

func TestRemoveLineIdempotent(t *testing.T) {
	c := NewCart("c-1")
	mustAdd(t, c, beans())

	before := c.Snapshot()
	c.RemoveLine("ghost")
	after := c.Snapshot()
	if !reflect.DeepEqual(before.Lines, after.Lines) {
		t.Fatalf("removing absent product changed the cart")
	}

	c.RemoveLine("p-1")
	if !c.Empty() {
		t.Fatalf("expected empty cart after removal")
	}
	c.RemoveLine("p-1")
	if !c.Empty() {
		t.Fatalf("second removal must be a no-op")
	}
}

func TestCheckoutScenario(t *testing.T) {
	c := NewCart("c-1")

	mustAdd(t, c, beans())
	if got := c.Lines()[0].LineTotal.Amount; !got.Equal(dec("28.589")) {
		t.Fatalf("after first add: line total = %s, want 28.589", got)
	}

	mustAdd(t, c, beans())
	if got := c.Lines()[0].LineTotal.Amount; !got.Equal(dec("57.178")) {
		t.Fatalf("after second add: line total = %s, want 57.178", got)
	}

	if err := c.SetDiscountPercent("p-1", dec("50")); err != nil {
		t.Fatalf("SetDiscountPercent failed: %v", err)
	}
	if got := c.Lines()[0].LineTotal.Amount; !got.Equal(dec("28.589")) {
		t.Fatalf("after discount: line total = %s, want 28.589", got)
	}

	totals := c.Totals()
	if !totals.Subtotal.Amount.Equal(dec("51.98")) {
		t.Fatalf("subtotal = %s, want 51.98", totals.Subtotal.Amount)
	}
	if !totals.TotalDiscount.Amount.Equal(dec("25.99")) {
		t.Fatalf("total discount = %s, want 25.99", totals.TotalDiscount.Amount)
	}
	if !totals.TotalTax.Amount.Equal(dec("2.599")) {
		t.Fatalf("total tax = %s, want 2.599", totals.TotalTax.Amount)
	}
	if !totals.GrandTotal.Amount.Equal(dec("28.589")) {
		t.Fatalf("grand total = %s, want 28.589", totals.GrandTotal.Amount)
	}
}

// The recomputation law: grand total always equals the sum of line
// totals, after any sequence of mutations.
func TestGrandTotalEqualsLineSum(t *testing.T) {
	filter := ProductSnapshot{
		ProductID: "p-2",
		Name:      "Filter Paper",
		SKU:       "COF-002",
		UnitPrice: Money{Currency: "USD", Amount: dec("3.49")},
	}
	frother := ProductSnapshot{
		ProductID: "p-3",
		Name:      "Milk Frother",
		SKU:       "ACC-001",
		UnitPrice: Money{Currency: "USD", Amount: dec("104.95")},
	}

	c := NewCart("c-1")
	mustAdd(t, c, beans())
	mustAdd(t, c, filter)
	mustAdd(t, c, frother)
	mustAdd(t, c, filter)

	steps := []func() error{
		func() error { return c.SetQuantity("p-3", 4) },
		func() error { return c.SetDiscountPercent("p-1", dec("12.5")) },
		func() error { return c.SetTaxPercent("p-2", dec("7.25")) },
		func() error { c.RemoveLine("p-2"); return nil },
		func() error { return c.AddLine(filter, defaultTax) },
		func() error { return c.SetDiscountPercent("p-3", dec("100")) },
	}

	check := func(step int) {
		sum := decimal.Zero
		for _, line := range c.Lines() {
			sum = sum.Add(line.LineTotal.Amount)
		}
		grand := c.Totals().GrandTotal.Amount
		if !grand.Equal(sum) {
			t.Fatalf("step %d: grand total %s != line sum %s", step, grand, sum)
		}
	}

	check(0)
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d failed: %v", i+1, err)
		}
		check(i + 1)
	}
}

func TestLinesPreserveInsertionOrder(t *testing.T) {
	c := NewCart("c-1")
	ids := []string{"p-9", "p-3", "p-7", "p-5"}
	for _, id := range ids {
		mustAdd(t, c, ProductSnapshot{
			ProductID: id,
			UnitPrice: Money{Currency: "USD", Amount: dec("1.00")},
		})
	}

	// Re-adding must not move a line to the back.
	mustAdd(t, c, ProductSnapshot{ProductID: "p-3", UnitPrice: Money{Currency: "USD", Amount: dec("1.00")}})

	lines := c.Lines()
	for i, id := range ids {
		if lines[i].ProductID != id {
			t.Fatalf("position %d: got %s, want %s", i, lines[i].ProductID, id)
		}
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	c := NewCart("c-1")
	mustAdd(t, c, beans())

	snap := c.Snapshot()
	if err := c.SetQuantity("p-1", 5); err != nil {
		t.Fatalf("SetQuantity failed: %v", err)
	}

	if snap.Lines[0].Quantity != 1 {
		t.Fatalf("snapshot mutated by later cart change")
	}
}

func TestClear(t *testing.T) {
	c := NewCart("c-1")
	mustAdd(t, c, beans())
	c.SetCustomer("cust-1")

	c.Clear()
	if !c.Empty() || c.CustomerID != "" {
		t.Fatalf("expected empty cart with no customer after Clear")
	}
	if !c.Totals().GrandTotal.Amount.IsZero() {
		t.Fatalf("totals of empty cart must be zero")
	}
}
