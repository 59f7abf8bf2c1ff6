// Package memory implements an in-memory order log.
package memory

import (
	"context"
	"sync"

	"storefront/pkg/order"
)

// Log provides an in-memory implementation of order.Log. Orders live for
// the lifetime of the process.
type Log struct {
	mu     sync.RWMutex
	orders []order.Order
}

// New creates a new in-memory log.
func New() *Log {
	return &Log{}
}

// Append stores a copy of the order.
func (l *Log) Append(ctx context.Context, o order.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orders = append(l.orders, o.Clone())
	return nil
}

// View returns all orders, oldest first.
func (l *Log) View(ctx context.Context) ([]order.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.orders) == 0 {
		return nil, order.ErrNoOrders
	}
	out := make([]order.Order, 0, len(l.orders))
	for _, o := range l.orders {
		out = append(out, o.Clone())
	}
	return out, nil
}
