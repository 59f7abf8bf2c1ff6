// Package cart implements the shopping cart a session fills before checkout.
package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/pkg/catalog"
)

var (
	// ErrEmptyCart indicates an operation that needs at least one line.
	ErrEmptyCart = errors.New("shopping cart is empty")
	// ErrInvalidQuantity indicates a non-positive quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Line is one product and its quantity.
type Line struct {
	Product  catalog.Product
	Quantity int
}

// Subtotal is price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps at most one line per product id, in insertion order.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts quantity units of p in the cart, merging with an existing line
// for the same product id.
func (c *Cart) Add(p catalog.Product, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: quantity})
	return nil
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Len returns the number of distinct products in the cart.
func (c *Cart) Len() int { return len(c.lines) }

// Total sums the line subtotals. An empty cart has no total.
func (c *Cart) Total() (decimal.Decimal, error) {
	if len(c.lines) == 0 {
		return decimal.Zero, ErrEmptyCart
	}
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total, nil
}

// Lines returns a snapshot of the cart lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.lines = nil
}
