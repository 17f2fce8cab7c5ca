package services

import (
	"context"
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/models"
)

// CancellationNoticeDays délai minimal avant livraison pour annuler
const CancellationNoticeDays = 3

type OrderService struct {
	orders   OrderStore
	payments PaymentStore
	sales    SalesStore
	clock    Clock
	log      logrus.FieldLogger
}

func NewOrderService(orders OrderStore, payments PaymentStore, sales SalesStore, clock Clock, log logrus.FieldLogger) *OrderService {
	return &OrderService{orders: orders, payments: payments, sales: sales, clock: clock, log: log}
}

// UserOrders commandes du client, non notées d'abord puis par note croissante
func (s *OrderService) UserOrders(ctx context.Context, customerID string) ([]models.Order, error) {
	orders, err := s.orders.ByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i].Rating, orders[j].Rating
		if a == nil || b == nil {
			return a == nil && b != nil
		}
		return *a < *b
	})
	return orders, nil
}

// ActiveOrders livraisons à partir d'aujourd'hui, par date de livraison
func (s *OrderService) ActiveOrders(ctx context.Context, customerID string) ([]models.Order, error) {
	orders, err := s.orders.ActiveByCustomer(ctx, customerID, dateOnly(s.clock.now()))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].DeliveryDate.Before(orders[j].DeliveryDate)
	})
	return orders, nil
}

func (s *OrderService) owned(ctx context.Context, customerID string, orderID int64) (*models.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, ErrNotFound
	}
	return order, nil
}

func (s *OrderService) Rate(ctx context.Context, customerID string, orderID int64, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	if _, err := s.owned(ctx, customerID, orderID); err != nil {
		return err
	}
	return s.orders.UpdateRating(ctx, orderID, rating)
}

// Cancel supprime ventes, lignes, commande et paiement si la livraison est dans 3 jours ou plus
func (s *OrderService) Cancel(ctx context.Context, customerID string, orderID int64) error {
	order, err := s.owned(ctx, customerID, orderID)
	if err != nil {
		return err
	}

	if daysBetween(s.clock.now(), order.DeliveryDate) < CancellationNoticeDays {
		return ErrCancellationWindow
	}

	lines, err := s.orders.ProductOrders(ctx, order.ID)
	if err != nil {
		return err
	}
	for _, line := range lines {
		n, err := s.sales.DeleteForOrderLine(ctx, line.ProductID, order.PurchaseDate, line.Quantity)
		if err != nil {
			return err
		}
		if int(n) < line.Quantity {
			s.log.WithFields(logrus.Fields{
				"order_id":   order.ID,
				"product_id": line.ProductID,
				"expected":   line.Quantity,
				"deleted":    n,
			}).Warn("⚠️ Ventes manquantes lors de l'annulation")
		}
	}

	if err := s.orders.DeleteProductOrders(ctx, order.ID); err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, order.ID); err != nil {
		return err
	}
	if err := s.payments.Delete(ctx, order.PaymentID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	s.log.WithField("order_id", order.ID).Info("🗑️ Commande annulée")
	return nil
}

func (s *OrderService) OverallRating(ctx context.Context) (float64, error) {
	orders, err := s.orders.All(ctx)
	if err != nil {
		return 0, err
	}
	return OverallRating(orders), nil
}

// OverallRating moyenne des notes arrondie à une décimale, 0 sans note
func OverallRating(orders []models.Order) float64 {
	var sum, count int
	for _, o := range orders {
		if o.Rating != nil {
			sum += *o.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10
}

// Get commande du client avec son paiement, nil si le paiement a disparu
func (s *OrderService) Get(ctx context.Context, customerID string, orderID int64) (*models.Order, *models.Payment, error) {
	order, err := s.owned(ctx, customerID, orderID)
	if err != nil {
		return nil, nil, err
	}
	payment, err := s.payments.Get(ctx, order.PaymentID)
	if errors.Is(err, ErrNotFound) {
		return order, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return order, payment, nil
}
