package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"ayana_shop/internal/models"
)

type DiscountRepository struct {
	db *sqlx.DB
}

func NewDiscountRepository(db *sqlx.DB) *DiscountRepository {
	return &DiscountRepository{db: db}
}

func (r *DiscountRepository) ByCode(ctx context.Context, code string) (*models.Discount, error) {
	var d models.Discount
	err := r.db.GetContext(ctx, &d,
		`SELECT id, code, amount, type, begins, ends FROM discounts WHERE code = $1`, code)
	if err != nil {
		return nil, errors.Wrapf(notFound(err), "code %q", code)
	}
	return &d, nil
}
