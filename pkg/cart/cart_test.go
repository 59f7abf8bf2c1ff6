package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/catalog"
)

func product(t *testing.T, id int) catalog.Product {
	t.Helper()
	c, err := catalog.New(catalog.Seed())
	require.NoError(t, err)
	p, err := c.Find(id)
	require.NoError(t, err)
	return p
}

func TestAddSameProductMergesLines(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(t, 3), 1))
	require.NoError(t, c.Add(product(t, 3), 1))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	total, err := c.Total()
	require.NoError(t, err)
	assert.Equal(t, "199.98", total.StringFixed(2))
}

func TestAddSumsQuantities(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(t, 1), 2))
	require.NoError(t, c.Add(product(t, 1), 5))

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 7, c.Lines()[0].Quantity)
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	c := New()
	for _, q := range []int{0, -3} {
		err := c.Add(product(t, 1), q)
		assert.True(t, errors.Is(err, ErrInvalidQuantity))
	}
	assert.True(t, c.IsEmpty())
}

func TestTotalEmptyCart(t *testing.T) {
	_, err := New().Total()
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestTotalIsOrderIndependent(t *testing.T) {
	a, b := New(), New()
	require.NoError(t, a.Add(product(t, 1), 1))
	require.NoError(t, a.Add(product(t, 4), 3))
	require.NoError(t, b.Add(product(t, 4), 3))
	require.NoError(t, b.Add(product(t, 1), 1))

	ta, err := a.Total()
	require.NoError(t, err)
	tb, err := b.Total()
	require.NoError(t, err)
	assert.True(t, ta.Equal(tb))
	assert.True(t, ta.Equal(decimal.RequireFromString("1059.96")))
}

func TestInsertionOrderPreserved(t *testing.T) {
	c := New()
	for _, id := range []int{5, 2, 4} {
		require.NoError(t, c.Add(product(t, id), 1))
	}
	require.NoError(t, c.Add(product(t, 2), 1))

	var ids []int
	for _, l := range c.Lines() {
		ids = append(ids, l.Product.ID)
	}
	assert.Equal(t, []int{5, 2, 4}, ids)
}

func TestLinesIsSnapshot(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(t, 2), 1))

	snap := c.Lines()
	require.NoError(t, c.Add(product(t, 2), 1))
	c.Clear()

	require.Len(t, snap, 1)
	assert.Equal(t, 1, snap[0].Quantity)
	assert.True(t, c.IsEmpty())
}
