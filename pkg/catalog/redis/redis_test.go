package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/catalog"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestStoreAndLoad(t *testing.T) {
	ctx := context.Background()
	src := New(setupTestRedis(t), "")

	require.NoError(t, src.Store(ctx, catalog.Seed()))

	c, err := catalog.Load(ctx, src)
	require.NoError(t, err)
	require.Equal(t, 5, c.Len())

	list := c.List()
	for i, p := range list {
		assert.Equal(t, i+1, p.ID, "products sorted by id")
	}
	p, err := c.Find(4)
	require.NoError(t, err)
	assert.Equal(t, "Mouse", p.Name)
	assert.Equal(t, "19.99", p.Price.StringFixed(2))
}

func TestStoreReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	src := New(setupTestRedis(t), "test:catalog")

	require.NoError(t, src.Store(ctx, catalog.Seed()))
	require.NoError(t, src.Store(ctx, catalog.Seed()[:1]))

	products, err := src.Load(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Laptop", products[0].Name)
}

func TestLoadRejectsBadField(t *testing.T) {
	ctx := context.Background()
	client := setupTestRedis(t)
	require.NoError(t, client.HSet(ctx, DefaultKey, "abc", `{"name":"x","price":"1"}`).Err())

	_, err := New(client, DefaultKey).Load(ctx)
	assert.Error(t, err)
}
