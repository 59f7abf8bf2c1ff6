package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Seed returns the built-in store catalog.
func Seed() []Product {
	return []Product{
		{ID: 1, Name: "Laptop", Price: decimal.RequireFromString("999.99")},
		{ID: 2, Name: "Smartphone", Price: decimal.RequireFromString("599.99")},
		{ID: 3, Name: "Headphones", Price: decimal.RequireFromString("99.99")},
		{ID: 4, Name: "Mouse", Price: decimal.RequireFromString("19.99")},
		{ID: 5, Name: "Keyboard", Price: decimal.RequireFromString("49.99")},
	}
}

// Static is a Source over a fixed product list.
type Static []Product

// Load returns a copy of the list.
func (s Static) Load(context.Context) ([]Product, error) {
	out := make([]Product, len(s))
	copy(out, s)
	return out, nil
}
