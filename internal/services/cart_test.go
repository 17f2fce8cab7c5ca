package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddAndRemove(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(newFakeCarts(), catalogProducts())

	q, err := svc.Add(ctx, "c1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, q)
	q, err = svc.Add(ctx, "c1", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, q)

	q, err = svc.RemoveOne(ctx, "c1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, q)
	q, err = svc.RemoveOne(ctx, "c1", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, q)

	lines, err := svc.Lines(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = svc.RemoveOne(ctx, "c1", 1)
	assert.ErrorIs(t, err, ErrNotInCart)
}

func TestCartAddUnknownProduct(t *testing.T) {
	svc := NewCartService(newFakeCarts(), catalogProducts())
	_, err := svc.Add(context.Background(), "c1", 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartLinesAndSubtotal(t *testing.T) {
	ctx := context.Background()
	products := catalogProducts()
	svc := NewCartService(newFakeCarts(), products)

	for _, id := range []int64{2, 1, 1, 5} {
		_, err := svc.Add(ctx, "c1", id)
		require.NoError(t, err)
	}
	// produit retiré du catalogue après ajout
	require.NoError(t, products.Delete(ctx, 5))

	lines, err := svc.Lines(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Red Roses", lines[0].Product.Name)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.InDelta(t, 165.0, Subtotal(lines), 1e-9)
}
