package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/catalog"
)

// Requires a reachable database; set STORE_TEST_DATABASE_URL to run.
func TestSourceRoundTrip(t *testing.T) {
	dsn := os.Getenv("STORE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("STORE_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	src := New(db)
	require.NoError(t, src.EnsureSchema(ctx))
	_, err = db.ExecContext(ctx, "TRUNCATE products")
	require.NoError(t, err)
	require.NoError(t, src.Store(ctx, catalog.Seed()))

	c, err := catalog.Load(ctx, src)
	require.NoError(t, err)
	require.Equal(t, 5, c.Len())

	p, err := c.Find(2)
	require.NoError(t, err)
	assert.Equal(t, "Smartphone", p.Name)
	assert.Equal(t, "599.99", p.Price.StringFixed(2))
}
