// Package textlog implements an order log persisted as human-readable
// blocks appended to a flat file.
package textlog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"

	"storefront/pkg/order"
)

// ErrRollback indicates a failed append whose partial block could not be
// removed. The file may hold a damaged final block; retrying would duplicate
// the order.
var ErrRollback = errors.New("order log rollback failed")

// Log appends orders to the file at path and re-reads the file on View.
type Log struct {
	mu       sync.Mutex
	path     string
	syncFile func(*os.File) error
}

// New creates a textual log backed by path. The file is created on the
// first Append.
func New(path string) *Log {
	return &Log{path: path, syncFile: (*os.File).Sync}
}

// Path returns the backing file path.
func (l *Log) Path() string { return l.path }

// Append writes the order block in a single write and syncs the file before
// returning. When the write or sync fails the file is truncated back to its
// previous size, so a failed Append leaves no trace and may be retried.
func (l *Log) Append(ctx context.Context, o order.Order) error {
	block, err := Encode(o)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open order log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat order log: %w", err)
	}
	size := info.Size()

	if _, err := f.Write(block); err != nil {
		return rollback(f, size, fmt.Errorf("write order log: %w", err))
	}
	if err := l.syncFile(f); err != nil {
		return rollback(f, size, fmt.Errorf("sync order log: %w", err))
	}
	// The block is durable once synced; a later close error cannot undo it.
	return nil
}

func rollback(f *os.File, size int64, cause error) error {
	if err := f.Truncate(size); err != nil {
		return fmt.Errorf("%w: %v (after %v)", ErrRollback, err, cause)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: %v (after %v)", ErrRollback, err, cause)
	}
	return cause
}

// View parses every order in the file, oldest first.
func (l *Log) View(ctx context.Context) ([]order.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, order.ErrNoOrders
	}
	if err != nil {
		return nil, fmt.Errorf("open order log: %w", err)
	}
	defer f.Close()

	orders, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read order log: %w", err)
	}
	if len(orders) == 0 {
		return nil, order.ErrNoOrders
	}
	return orders, nil
}

// MaxSequence returns the largest numeric order id in the file, or 0 when
// the file is absent or holds no numeric ids.
func (l *Log) MaxSequence(ctx context.Context) (int64, error) {
	orders, err := l.View(ctx)
	if errors.Is(err, order.ErrNoOrders) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var highest int64
	for _, o := range orders {
		if n, err := strconv.ParseInt(o.ID, 10, 64); err == nil && n > highest {
			highest = n
		}
	}
	return highest, nil
}
