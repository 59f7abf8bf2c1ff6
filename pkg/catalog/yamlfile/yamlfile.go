// Package yamlfile loads a catalog from a YAML document.
//
//	products:
//	  - id: 1
//	    name: Laptop
//	    price: "999.99"
package yamlfile

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"storefront/pkg/catalog"
)

type document struct {
	Products []entry `yaml:"products"`
}

type entry struct {
	ID    int    `yaml:"id"`
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
}

// Source reads products from the YAML file at Path.
type Source struct {
	Path string
}

// Load implements catalog.Source.
func (s Source) Load(ctx context.Context) ([]catalog.Product, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a YAML catalog document.
func Decode(r io.Reader) ([]catalog.Product, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	out := make([]catalog.Product, 0, len(doc.Products))
	for _, e := range doc.Products {
		price, err := decimal.NewFromString(e.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d price %q: %w", e.ID, e.Price, err)
		}
		out = append(out, catalog.Product{ID: e.ID, Name: e.Name, Price: price})
	}
	return out, nil
}
