// Package payment defines the simulated payment methods offered at checkout.
package payment

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidChoice indicates a menu index outside the method list.
var ErrInvalidChoice = errors.New("invalid payment method")

// Method is one of the closed set of payment methods.
type Method int

const (
	Cash Method = iota + 1
	Card
	GCash
)

// Methods lists every method in menu order.
func Methods() []Method {
	return []Method{Cash, Card, GCash}
}

// FromChoice maps a 1-based menu index to a Method.
func FromChoice(n int) (Method, error) {
	m := Method(n)
	if !m.Valid() {
		return 0, fmt.Errorf("%w: please select 1-%d", ErrInvalidChoice, len(Methods()))
	}
	return m, nil
}

// Valid reports whether m is a known method.
func (m Method) Valid() bool {
	return m >= Cash && m <= GCash
}

// String returns the display name.
func (m Method) String() string {
	switch m {
	case Cash:
		return "Cash"
	case Card:
		return "Credit/Debit Card"
	case GCash:
		return "GCash"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Settlement describes a completed (simulated) payment.
type Settlement struct {
	Method Method
	Amount decimal.Decimal
	Action string
}

// Settle pays amount with m. Payment is simulated and always succeeds.
func (m Method) Settle(amount decimal.Decimal) Settlement {
	s := Settlement{Method: m, Amount: amount}
	switch m {
	case Cash:
		s.Action = "cash collected"
	case Card:
		s.Action = "card charged"
	case GCash:
		s.Action = "e-wallet transfer received"
	}
	return s
}
