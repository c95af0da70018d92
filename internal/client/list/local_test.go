package list

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	l, err := OpenLocal(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func entry(productID string, price float64) Entry {
	return Entry{ProductID: productID, Price: price, Name: "Perfume " + productID, Image: "/img/" + productID + ".jpg"}
}

func TestLocalQuickAddIncrements(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)

	require.NoError(t, l.Add(ctx, entry("p1", 100)))
	require.NoError(t, l.Add(ctx, entry("p1", 100)))

	got, err := l.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Qty)
	assert.Equal(t, 100.0, got[0].Price)
}

func TestLocalSetQuantityReplaces(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)

	require.NoError(t, l.Add(ctx, entry("p1", 100)))
	require.NoError(t, l.Add(ctx, entry("p1", 100)))
	require.NoError(t, l.SetQuantity(ctx, "p1", 5))

	got, err := l.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].Qty, "set must replace, not add to, the quantity")
}

func TestLocalSetQuantityMissingLine(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)

	err := l.SetQuantity(ctx, "ghost", 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalSetQuantityRejectsNonPositive(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)
	require.NoError(t, l.Add(ctx, entry("p1", 100)))

	assert.Error(t, l.SetQuantity(ctx, "p1", 0))
	assert.Error(t, l.SetQuantity(ctx, "p1", -1))
}

func TestLocalSubtotalRecomputed(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)

	sum, err := l.Subtotal(ctx)
	require.NoError(t, err)
	assert.Zero(t, sum)

	require.NoError(t, l.Add(ctx, entry("p1", 100)))
	require.NoError(t, l.Add(ctx, entry("p1", 100)))
	require.NoError(t, l.Add(ctx, entry("p2", 50)))

	sum, err = l.Subtotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, 250.0, sum)

	require.NoError(t, l.Remove(ctx, "p1"))
	sum, err = l.Subtotal(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50.0, sum)
}

func TestLocalRemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	l := newTestLocal(t)

	assert.NoError(t, l.Remove(ctx, "never-added"))
}
