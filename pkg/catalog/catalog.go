// Package catalog holds the read-only list of products offered by the store.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a purchasable catalog entry.
type Product struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

var (
	// ErrInvalidProductID indicates a lookup for an id the catalog does not hold.
	ErrInvalidProductID = errors.New("invalid product ID")
	// ErrInvalidProduct indicates a product that cannot enter a catalog.
	ErrInvalidProduct = errors.New("invalid product")
)

// Source loads catalog products from some backing store.
type Source interface {
	Load(ctx context.Context) ([]Product, error)
}

// Catalog is an immutable, ordered set of products.
type Catalog struct {
	products []Product
	byID     map[int]int
}

// New validates products and returns a Catalog preserving their order.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	for _, p := range products {
		if err := validate(p); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidProduct, p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Load builds a Catalog from src.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	products, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return New(products)
}

// List returns the products in catalog order.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Find returns the product with the given id.
func (c *Catalog) Find(id int) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %d", ErrInvalidProductID, id)
	}
	return c.products[i], nil
}

// Len reports the number of products.
func (c *Catalog) Len() int { return len(c.products) }

func validate(p Product) error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("%w: id %d must be positive", ErrInvalidProduct, p.ID)
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: id %d has no name", ErrInvalidProduct, p.ID)
	case strings.ContainsAny(p.Name, "\t\r\n"):
		return fmt.Errorf("%w: id %d name contains a tab or line break", ErrInvalidProduct, p.ID)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: id %d has a negative price", ErrInvalidProduct, p.ID)
	case !p.Price.Equal(p.Price.Truncate(2)):
		return fmt.Errorf("%w: id %d price %s has fractions of a cent", ErrInvalidProduct, p.ID, p.Price)
	}
	return nil
}
