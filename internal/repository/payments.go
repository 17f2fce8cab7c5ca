package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"ayana_shop/internal/models"
)

type PaymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO payments (payed_amount, delivery_address, bank_account, payment_type, discount_id, provider_ref)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		p.PayedAmount, p.DeliveryAddress, p.BankAccount, p.PaymentType, p.DiscountID, p.ProviderRef,
	).Scan(&p.ID)
	return errors.Wrap(err, "création paiement")
}

func (r *PaymentRepository) Get(ctx context.Context, id int64) (*models.Payment, error) {
	var p models.Payment
	err := r.db.GetContext(ctx, &p,
		`SELECT id, payed_amount, delivery_address, bank_account, payment_type, discount_id, provider_ref
		 FROM payments WHERE id = $1`, id)
	if err != nil {
		return nil, errors.Wrapf(notFound(err), "paiement %d", id)
	}
	return &p, nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	err := affected(r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id))
	return errors.Wrapf(err, "suppression paiement %d", id)
}
