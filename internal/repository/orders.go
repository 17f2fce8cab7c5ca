package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"ayana_shop/internal/models"
)

const orderColumns = `id, customer_id, payment_id, delivery_date, purchase_date, total_amount_to_pay,
	personal_message, is_order_sent, rating`

type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO orders (customer_id, payment_id, delivery_date, purchase_date, total_amount_to_pay,
		 personal_message, is_order_sent, rating)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		o.CustomerID, o.PaymentID, o.DeliveryDate, o.PurchaseDate, o.TotalAmountToPay,
		o.PersonalMessage, o.IsOrderSent, o.Rating,
	).Scan(&o.ID)
	return errors.Wrap(err, "création commande")
}

func (r *OrderRepository) Get(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	err := r.db.GetContext(ctx, &o, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if err != nil {
		return nil, errors.Wrapf(notFound(err), "commande %d", id)
	}
	return &o, nil
}

// ByCustomer triées par note, les commandes sans note d'abord
func (r *OrderRepository) ByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.db.SelectContext(ctx, &orders,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1
		 ORDER BY rating ASC NULLS FIRST, id`, customerID)
	return orders, errors.Wrap(err, "commandes client")
}

func (r *OrderRepository) ActiveByCustomer(ctx context.Context, customerID string, today time.Time) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.db.SelectContext(ctx, &orders,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 AND delivery_date >= $2
		 ORDER BY delivery_date, id`, customerID, today)
	return orders, errors.Wrap(err, "commandes actives")
}

// All toutes les commandes, pour la note moyenne de la page d'accueil
func (r *OrderRepository) All(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.db.SelectContext(ctx, &orders, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
	return orders, errors.Wrap(err, "toutes les commandes")
}

func (r *OrderRepository) UpdateRating(ctx context.Context, id int64, rating int) error {
	err := affected(r.db.ExecContext(ctx, `UPDATE orders SET rating = $1 WHERE id = $2`, rating, id))
	return errors.Wrapf(err, "note commande %d", id)
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	err := affected(r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id))
	return errors.Wrapf(err, "suppression commande %d", id)
}

func (r *OrderRepository) CreateProductOrder(ctx context.Context, po *models.ProductOrder) error {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO product_orders (order_id, product_id, quantity) VALUES ($1, $2, $3) RETURNING id`,
		po.OrderID, po.ProductID, po.Quantity,
	).Scan(&po.ID)
	return errors.Wrap(err, "création ligne commande")
}

func (r *OrderRepository) ProductOrders(ctx context.Context, orderID int64) ([]models.ProductOrder, error) {
	lines := []models.ProductOrder{}
	err := r.db.SelectContext(ctx, &lines,
		`SELECT id, order_id, product_id, quantity FROM product_orders WHERE order_id = $1 ORDER BY id`, orderID)
	return lines, errors.Wrap(err, "lignes commande")
}

func (r *OrderRepository) DeleteProductOrders(ctx context.Context, orderID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM product_orders WHERE order_id = $1`, orderID)
	return errors.Wrapf(err, "suppression lignes commande %d", orderID)
}
