// Package cart holds the in-progress sale of a single POS session.
// The cart lives only in memory; nothing is persisted until checkout
// confirms the sale.
package cart

import (
	"github.com/shopspring/decimal"
)

// Item is one product line inside a cart. UnitPrice is captured at the
// moment the product is first added and never re-read afterwards.
type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total_price"`
}

// Cart is an ordered collection of items, unique per product.
// It is not safe for concurrent use; the owning session serializes access.
type Cart struct {
	items []Item
}

func New() *Cart { return &Cart{} }

var one = decimal.NewFromInt(1)

// Add appends a new line with quantity 1, or increments the existing
// line for the same product by 1 and recomputes its total.
func (c *Cart) Add(productID, name, sku string, unitPrice decimal.Decimal) Item {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = c.items[i].Quantity.Add(one)
			c.items[i].Total = c.items[i].Quantity.Mul(c.items[i].UnitPrice)
			return c.items[i]
		}
	}
	it := Item{
		ProductID: productID,
		Name:      name,
		SKU:       sku,
		Quantity:  one,
		UnitPrice: unitPrice,
		Total:     unitPrice,
	}
	c.items = append(c.items, it)
	return it
}

// ChangeQuantity adjusts a line by delta, flooring at zero. A line whose
// quantity reaches zero is removed. Unknown product ids are a no-op.
func (c *Cart) ChangeQuantity(productID string, delta decimal.Decimal) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.apply(i, c.items[i].Quantity.Add(delta))
			return
		}
	}
}

// SetQuantity sets a line to an absolute quantity, same floor/removal
// rule as ChangeQuantity.
func (c *Cart) SetQuantity(productID string, qty decimal.Decimal) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.apply(i, qty)
			return
		}
	}
}

func (c *Cart) apply(i int, qty decimal.Decimal) {
	if qty.Sign() <= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
		return
	}
	c.items[i].Quantity = qty
	c.items[i].Total = qty.Mul(c.items[i].UnitPrice)
}

// Remove drops a line unconditionally. Unknown ids are a no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Total recomputes the cart total from the line totals on every call;
// there is no cached aggregate to go stale.
func (c *Cart) Total() decimal.Decimal {
	sum := decimal.Zero
	for i := range c.items {
		sum = sum.Add(c.items[i].Total)
	}
	return sum
}

// Units is the sum of all line quantities, shown as the cart badge.
func (c *Cart) Units() decimal.Decimal {
	sum := decimal.Zero
	for i := range c.items {
		sum = sum.Add(c.items[i].Quantity)
	}
	return sum
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	return append([]Item(nil), c.items...)
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) Empty() bool { return len(c.items) == 0 }

// Clear resets the cart to empty. Called after a successful checkout.
func (c *Cart) Clear() { c.items = nil }
