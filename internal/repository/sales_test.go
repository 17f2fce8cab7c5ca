package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesDeleteForOrderLineIsBounded(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSalesRepository(db)

	purchased := time.Date(2024, 5, 2, 10, 30, 0, 0, time.UTC)
	mock.ExpectExec(`DELETE FROM product_sales WHERE id IN`).
		WithArgs(int64(3), purchased, 2).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeleteForOrderLine(context.Background(), 3, purchased, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestSalesSummary(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSalesRepository(db)

	from := time.Date(2024, 4, 25, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	mock.ExpectQuery(`FROM product_sales s JOIN products p`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "price", "units_sold"}).
			AddRow(1, "Red Rose Bouquet", 45.0, 3).
			AddRow(3, "Pastel Tulips", 29.9, 1))

	rows, err := repo.Summary(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].UnitsSold)
	assert.InDelta(t, 135.0, rows[0].Revenue(), 0.001)
}
