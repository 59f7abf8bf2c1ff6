// Package redis loads the catalog from a Redis hash keyed by product id.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"storefront/pkg/catalog"
)

// DefaultKey is the hash holding the catalog.
const DefaultKey = "storefront:catalog"

type record struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Source reads products from a Redis hash whose fields are product ids and
// whose values are JSON {"name","price"} records.
type Source struct {
	rdb *redis.Client
	key string
}

// New creates a Redis catalog source reading key.
func New(rdb *redis.Client, key string) *Source {
	if key == "" {
		key = DefaultKey
	}
	return &Source{rdb: rdb, key: key}
}

// Load fetches all products sorted by id.
func (s *Source) Load(ctx context.Context) ([]catalog.Product, error) {
	fields, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}
	products := make([]catalog.Product, 0, len(fields))
	for field, raw := range fields {
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("catalog field %q: %w", field, err)
		}
		var rec record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("catalog product %d: %w", id, err)
		}
		products = append(products, catalog.Product{ID: id, Name: rec.Name, Price: rec.Price})
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// Store replaces the catalog hash with products.
func (s *Source) Store(ctx context.Context, products []catalog.Product) error {
	values := make([]any, 0, 2*len(products))
	for _, p := range products {
		b, err := json.Marshal(record{Name: p.Name, Price: p.Price})
		if err != nil {
			return err
		}
		values = append(values, strconv.Itoa(p.ID), string(b))
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(values) > 0 {
			pipe.HSet(ctx, s.key, values...)
		}
		return nil
	})
	return err
}
