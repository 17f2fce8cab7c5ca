package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"ayana_shop/internal/models"
)

type SubscriptionRepository struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *models.Subscription) error {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO subscriptions (name, price, delivery_date, customer_id, payment_id, personal_message)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		s.Name, s.Price, s.DeliveryDate, s.CustomerID, s.PaymentID, s.PersonalMessage,
	).Scan(&s.ID)
	return errors.Wrap(err, "création abonnement")
}

func (r *SubscriptionRepository) ByCustomer(ctx context.Context, customerID string) ([]models.Subscription, error) {
	subs := []models.Subscription{}
	err := r.db.SelectContext(ctx, &subs,
		`SELECT id, name, price, delivery_date, customer_id, payment_id, personal_message
		 FROM subscriptions WHERE customer_id = $1 ORDER BY delivery_date`, customerID)
	return subs, errors.Wrap(err, "abonnements client")
}
