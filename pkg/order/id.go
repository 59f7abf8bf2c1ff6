package order

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// IDGenerator allocates order identifiers.
type IDGenerator interface {
	Next() string
}

// Counter issues "1", "2", ... starting after the given sequence number.
type Counter struct {
	n atomic.Int64
}

// NewCounter returns a Counter whose first id is last+1.
func NewCounter(last int64) *Counter {
	c := &Counter{}
	c.n.Store(last)
	return c
}

// Next implements IDGenerator.
func (c *Counter) Next() string {
	return strconv.FormatInt(c.n.Add(1), 10)
}

// Timestamp issues "ORD" + unix seconds. Two checkouts within the same
// second get the same id.
type Timestamp struct {
	Now func() time.Time
}

// Next implements IDGenerator.
func (t Timestamp) Next() string {
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	return "ORD" + strconv.FormatInt(now().Unix(), 10)
}

// UUID issues "ORD-" + a random UUID.
type UUID struct{}

// Next implements IDGenerator.
func (UUID) Next() string {
	return "ORD-" + uuid.NewString()
}
