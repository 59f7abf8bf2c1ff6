// Package postgres loads the catalog from a PostgreSQL products table.
package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq" // registers the "postgres" driver

	"storefront/pkg/catalog"
)

// Schema creates the products table read by Source.
const Schema = `CREATE TABLE IF NOT EXISTS products (
	id    INT PRIMARY KEY,
	name  TEXT NOT NULL,
	price NUMERIC(12,2) NOT NULL CHECK (price >= 0)
)`

// Source reads products from PostgreSQL.
type Source struct {
	db *sql.DB
}

// Open connects to dsn and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// New creates a PostgreSQL catalog source.
func New(db *sql.DB) *Source {
	return &Source{db: db}
}

// EnsureSchema creates the products table if it is missing.
func (s *Source) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, Schema)
	return err
}

// Load fetches all products ordered by id.
func (s *Source) Load(ctx context.Context) ([]catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id,name,price FROM products ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []catalog.Product
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Store upserts products in a single transaction.
func (s *Source) Store(ctx context.Context, products []catalog.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range products {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO products (id,name,price) VALUES ($1,$2,$3) ON CONFLICT (id) DO UPDATE SET name=$2, price=$3",
			p.ID, p.Name, p.Price.StringFixed(2))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
