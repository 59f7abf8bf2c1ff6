package textlog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/order"
)

func TestViewMissingFile(t *testing.T) {
	log := New(filepath.Join(t.TempDir(), "orders.log"))
	_, err := log.View(context.Background())
	assert.ErrorIs(t, err, order.ErrNoOrders)
}

func TestViewFileWithoutBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.log")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0o644))

	_, err := New(path).View(context.Background())
	assert.ErrorIs(t, err, order.ErrNoOrders)
}

func TestAppendAndView(t *testing.T) {
	ctx := context.Background()
	log := New(filepath.Join(t.TempDir(), "orders.log"))

	first := sampleOrder()
	second := sampleOrder()
	second.ID = "8"
	second.PaymentMethod = "GCash"

	require.NoError(t, log.Append(ctx, first))
	require.NoError(t, log.Append(ctx, second))

	orders, err := log.View(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "7", orders[0].ID)
	assert.Equal(t, "8", orders[1].ID)
	assert.Equal(t, "GCash", orders[1].PaymentMethod)

	highest, err := log.MaxSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), highest)
}

func TestAppendUnencodableLeavesFileUntouched(t *testing.T) {
	ctx := context.Background()
	log := New(filepath.Join(t.TempDir(), "orders.log"))

	bad := sampleOrder()
	bad.Lines[0].Name = "a\tb"
	assert.ErrorIs(t, log.Append(ctx, bad), ErrUnencodable)

	_, err := os.Stat(log.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestAppendFailsOnUnwritablePath(t *testing.T) {
	log := New(filepath.Join(t.TempDir(), "missing-dir", "orders.log"))
	assert.Error(t, log.Append(context.Background(), sampleOrder()))
}

func TestMaxSequenceEmpty(t *testing.T) {
	highest, err := New(filepath.Join(t.TempDir(), "orders.log")).MaxSequence(context.Background())
	require.NoError(t, err)
	assert.Zero(t, highest)
}

func TestAppendSyncFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	log := New(filepath.Join(t.TempDir(), "orders.log"))
	require.NoError(t, log.Append(ctx, sampleOrder()))
	before, err := os.ReadFile(log.Path())
	require.NoError(t, err)

	second := sampleOrder()
	second.ID = "8"
	log.syncFile = func(*os.File) error { return errors.New("input/output error") }
	err = log.Append(ctx, second)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRollback)

	after, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// A retry after the failure records the order exactly once.
	log.syncFile = (*os.File).Sync
	require.NoError(t, log.Append(ctx, second))

	orders, err := log.View(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "7", orders[0].ID)
	assert.Equal(t, "8", orders[1].ID)
}

func TestAppendSyncFailureOnNewFileLeavesItEmpty(t *testing.T) {
	ctx := context.Background()
	log := New(filepath.Join(t.TempDir(), "orders.log"))
	log.syncFile = func(*os.File) error { return errors.New("input/output error") }

	require.Error(t, log.Append(ctx, sampleOrder()))

	_, err := log.View(ctx)
	assert.ErrorIs(t, err, order.ErrNoOrders)
}
