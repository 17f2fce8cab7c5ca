package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayana_shop/internal/models"
)

func TestEditorCreateWithImage(t *testing.T) {
	ctx := context.Background()
	products, idx, storage, auditor := newFakeProducts(), &fakeIndex{}, &fakeStorage{}, &fakeAuditor{}
	e := NewProductEditor(products, idx, storage, "ayana-products", auditor, quietLog())

	p := &models.Product{Name: "Peonies", Price: 55, Category: "Wedding"}
	image := &Upload{Filename: "peony.JPG", Size: 3, ContentType: "image/jpeg", Body: strings.NewReader("img")}
	require.NoError(t, e.Create(ctx, Actor{UserID: "emp", IP: "10.0.0.1"}, p, image))

	assert.NotZero(t, p.ID)
	assert.True(t, strings.HasPrefix(p.ImageURL, "http://minio/ayana-products/products/"))
	assert.True(t, strings.HasSuffix(p.ImageURL, ".JPG"))
	assert.Equal(t, []int64{p.ID}, idx.indexed)

	require.Len(t, auditor.entries, 1)
	assert.Equal(t, ActionProductCreate, auditor.entries[0].Action)
	assert.Equal(t, "10.0.0.1", auditor.entries[0].IPAddress)
}

func TestEditorEditAndDelete(t *testing.T) {
	ctx := context.Background()
	products, idx, auditor := catalogProducts(), &fakeIndex{}, &fakeAuditor{}
	e := NewProductEditor(products, idx, nil, "", auditor, quietLog())
	actor := Actor{UserID: "emp"}

	require.NoError(t, e.EditNameAndPrice(ctx, actor, 1, "Deep Red Roses", 65))
	p, _ := products.Get(ctx, 1)
	assert.Equal(t, "Deep Red Roses", p.Name)
	assert.Equal(t, 65.0, p.Price)

	p.Stock = 12
	require.NoError(t, e.EditAll(ctx, actor, *p))
	p, _ = products.Get(ctx, 1)
	assert.Equal(t, 12, p.Stock)

	require.NoError(t, e.Delete(ctx, actor, 1))
	assert.Equal(t, []int64{1}, idx.removed)
	_, err := products.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, e.Delete(ctx, actor, 1), ErrNotFound)
	assert.Len(t, auditor.entries, 3)
}

func TestEditorWithoutAuditor(t *testing.T) {
	e := NewProductEditor(newFakeProducts(), nil, nil, "", nil, quietLog())
	require.NoError(t, e.Create(context.Background(), Actor{}, &models.Product{Name: "Daisies", Price: 10}, nil))

	all, err := e.GetAllProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
