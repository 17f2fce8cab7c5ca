package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayana_shop/internal/models"
)

var productRowColumns = []string{"id", "name", "price", "stock", "category", "flower_type", "description", "image_url"}

func TestProductGet(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`SELECT .* FROM products WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(productRowColumns).
			AddRow(3, "Pastel Tulips", 29.9, 30, "Spring", "Tulip", "Mixed", "/img/t.jpg"))

	p, err := repo.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Pastel Tulips", p.Name)
	assert.Equal(t, 29.9, p.Price)
	assert.Equal(t, "Tulip", p.FlowerType)
}

func TestProductGetNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`SELECT .* FROM products WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(productRowColumns))

	_, err := repo.Get(context.Background(), 99)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProductCreateSetsID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db)

	p := &models.Product{Name: "Red Rose Bouquet", Price: 45, Stock: 20, Category: "Romance", FlowerType: "Rose"}
	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs(p.Name, p.Price, p.Stock, p.Category, p.FlowerType, p.Description, p.ImageURL).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, int64(7), p.ID)
}

func TestProductUpdateNameAndPriceMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db)

	mock.ExpectExec(`UPDATE products SET name = \$1, price = \$2 WHERE id = \$3`).
		WithArgs("Tulips", 19.5, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateNameAndPrice(context.Background(), 42, "Tulips", 19.5)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProductDelete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db)

	mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), 5))
}

func TestProductSearchByNameUsesLiteralPattern(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`WHERE name ILIKE \$1`).
		WithArgs(`%rose (red)%`).
		WillReturnRows(sqlmock.NewRows(productRowColumns).
			AddRow(1, "Rose (red)", 45.0, 2, "Romance", "Rose", "", ""))

	products, err := repo.SearchByName(context.Background(), "rose (red)")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(1), products[0].ID)
}

func TestProductTopByPrice(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`ORDER BY price DESC, id LIMIT \$2`).
		WithArgs("Birthday", 3).
		WillReturnRows(sqlmock.NewRows(productRowColumns).
			AddRow(4, "Birthday Surprise Box", 55.0, 10, "Birthday", "Mixed", "", "").
			AddRow(2, "Birthday Sunshine", 38.5, 15, "Birthday", "Sunflower", "", ""))

	products, err := repo.TopByPrice(context.Background(), "Birthday", 3)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Birthday Surprise Box", products[0].Name)
}

func TestProductByIDsEmpty(t *testing.T) {
	db, _ := newMock(t)
	repo := NewProductRepository(db)

	products, err := repo.ByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}
