package order

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Line is a product snapshot taken from the cart at checkout.
type Line struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Order represents a completed checkout.
type Order struct {
	ID            string          `json:"id"`
	PaymentMethod string          `json:"payment_method"`
	Lines         []Line          `json:"lines"`
	Total         decimal.Decimal `json:"total"`
}

// Clone returns a deep copy of o.
func (o Order) Clone() Order {
	c := o
	c.Lines = make([]Line, len(o.Lines))
	copy(c.Lines, o.Lines)
	return c
}

// Log defines behavior for the append-only order history.
type Log interface {
	Append(ctx context.Context, o Order) error
	View(ctx context.Context) ([]Order, error)
}

// ErrNoOrders indicates the order history is empty.
var ErrNoOrders = errors.New("no orders found")
