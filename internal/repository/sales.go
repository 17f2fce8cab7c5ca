package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"ayana_shop/internal/models"
)

type SalesRepository struct {
	db *sqlx.DB
}

func NewSalesRepository(db *sqlx.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

func (r *SalesRepository) Create(ctx context.Context, s *models.ProductSales) error {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO product_sales (product_id, sales_date) VALUES ($1, $2) RETURNING id`,
		s.ProductID, s.SalesDate,
	).Scan(&s.ID)
	return errors.Wrap(err, "création vente")
}

// DeleteForOrderLine supprime au plus limit ventes du produit à la date exacte d'achat
func (r *SalesRepository) DeleteForOrderLine(ctx context.Context, productID int64, salesDate time.Time, limit int) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM product_sales WHERE id IN (
			SELECT id FROM product_sales WHERE product_id = $1 AND sales_date = $2 ORDER BY id LIMIT $3
		 )`, productID, salesDate, limit)
	if err != nil {
		return 0, errors.Wrapf(err, "suppression ventes produit %d", productID)
	}
	return res.RowsAffected()
}

// Summary ventes agrégées par produit sur [from, to)
func (r *SalesRepository) Summary(ctx context.Context, from, to time.Time) ([]models.ProductSalesSummary, error) {
	rows := []models.ProductSalesSummary{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT p.id AS product_id, p.name, p.price, count(s.id) AS units_sold
		 FROM product_sales s JOIN products p ON p.id = s.product_id
		 WHERE s.sales_date >= $1 AND s.sales_date < $2
		 GROUP BY p.id, p.name, p.price
		 ORDER BY units_sold DESC, p.name`, from, to)
	return rows, errors.Wrap(err, "synthèse ventes")
}
