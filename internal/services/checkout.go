package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/models"
)

var (
	ErrDeliveryDate    = errors.New("la date de livraison ne peut pas être dans le passé")
	ErrDeliveryAddress = errors.New("l'adresse de livraison est obligatoire")
	ErrCardUnavailable = errors.New("paiement par carte indisponible")
	ErrPaymentType     = errors.New("type de paiement inconnu")
)

// CheckoutForm données saisies sur la page panier
type CheckoutForm struct {
	DeliveryDate    time.Time
	PersonalMessage string
	DeliveryAddress string
	BankAccount     string
	PaymentType     models.PaymentType
	DiscountCode    string
}

type CheckoutService struct {
	carts    *CartService
	orders   OrderStore
	payments PaymentStore
	sales    SalesStore
	verifier DiscountVerifier
	gateway  PaymentGateway
	emails   *EmailService
	clock    Clock
	placed   Counter
	log      logrus.FieldLogger
}

type CheckoutDeps struct {
	Carts    *CartService
	Orders   OrderStore
	Payments PaymentStore
	Sales    SalesStore
	Verifier DiscountVerifier
	Gateway  PaymentGateway // nil: pas de paiement par carte
	Emails   *EmailService  // nil: pas d'email de confirmation
	Clock    Clock
	Placed   Counter
	Log      logrus.FieldLogger
}

func NewCheckoutService(d CheckoutDeps) *CheckoutService {
	return &CheckoutService{
		carts:    d.Carts,
		orders:   d.Orders,
		payments: d.Payments,
		sales:    d.Sales,
		verifier: d.Verifier,
		gateway:  d.Gateway,
		emails:   d.Emails,
		clock:    d.Clock,
		placed:   counterOrNoop(d.Placed),
		log:      d.Log,
	}
}

// EvaluateCode vérifie un code saisi à l'heure du service, la même que Quote
func (s *CheckoutService) EvaluateCode(ctx context.Context, code string) (models.DiscountValidation, error) {
	return EvaluateCode(ctx, s.verifier, code, s.clock.now())
}

func (s *CheckoutService) Today() time.Time {
	return dateOnly(s.clock.now())
}

// Quote total du panier après application éventuelle du code
func (s *CheckoutService) Quote(ctx context.Context, customerID, code string) ([]models.CartItem, float64, *models.Discount, error) {
	lines, err := s.carts.Lines(ctx, customerID)
	if err != nil {
		return nil, 0, nil, err
	}
	subtotal := Subtotal(lines)

	if strings.TrimSpace(code) == "" {
		return lines, subtotal, nil, nil
	}
	d, err := s.verifier.GetDiscount(ctx, code)
	if err != nil {
		return nil, 0, nil, err
	}
	if d == nil || !d.ValidAt(s.clock.now()) {
		return lines, subtotal, nil, nil
	}
	return lines, roundCents(ApplyDiscount(subtotal, d.Amount, d.Type)), d, nil
}

// PlaceOrder enregistre paiement, commande, ventes et lignes puis vide le panier.
// Les écritures sont séquentielles, sans transaction englobante.
func (s *CheckoutService) PlaceOrder(ctx context.Context, customer models.User, form CheckoutForm) (*models.Order, error) {
	now := s.clock.now().Truncate(time.Microsecond)

	if err := validateForm(form, now); err != nil {
		return nil, err
	}

	lines, total, discount, err := s.Quote(ctx, customer.ID, form.DiscountCode)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	payment := &models.Payment{
		PayedAmount:     total,
		DeliveryAddress: strings.TrimSpace(form.DeliveryAddress),
		BankAccount:     strings.TrimSpace(form.BankAccount),
		PaymentType:     form.PaymentType,
	}
	if discount != nil {
		payment.DiscountID = &discount.ID
	}

	if form.PaymentType == models.PaymentCard {
		if s.gateway == nil {
			return nil, ErrCardUnavailable
		}
		ref, err := s.gateway.CreateIntent(ctx, total, fmt.Sprintf("ayana-%s-%d", customer.ID, now.Unix()))
		if err != nil {
			return nil, errors.Wrap(err, "paiement carte")
		}
		payment.ProviderRef = ref
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerID:       customer.ID,
		PaymentID:        payment.ID,
		DeliveryDate:     form.DeliveryDate,
		PurchaseDate:     now,
		TotalAmountToPay: total,
		PersonalMessage:  form.PersonalMessage,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	for _, line := range lines {
		for i := 0; i < line.Quantity; i++ {
			if err := s.sales.Create(ctx, &models.ProductSales{ProductID: line.ProductID, SalesDate: now}); err != nil {
				return nil, err
			}
		}
		po := &models.ProductOrder{OrderID: order.ID, ProductID: line.ProductID, Quantity: line.Quantity}
		if err := s.orders.CreateProductOrder(ctx, po); err != nil {
			return nil, err
		}
	}

	if err := s.carts.Clear(ctx, customer.ID); err != nil {
		return nil, err
	}
	s.placed.Inc()

	s.log.WithFields(logrus.Fields{
		"order_id":    order.ID,
		"customer_id": customer.ID,
		"total":       total,
	}).Info("🛒 Commande enregistrée")

	if s.emails != nil {
		if err := s.emails.SendOrderConfirmation(ctx, customer, *order, lines); err != nil {
			s.log.WithError(err).Warn("⚠️ Email de confirmation non envoyé")
		}
	}
	return order, nil
}

func validateForm(form CheckoutForm, now time.Time) error {
	if form.DeliveryDate.IsZero() || dateOnly(form.DeliveryDate).Before(dateOnly(now)) {
		return ErrDeliveryDate
	}
	if strings.TrimSpace(form.DeliveryAddress) == "" {
		return ErrDeliveryAddress
	}
	switch form.PaymentType {
	case models.PaymentCash, models.PaymentCard:
		return nil
	default:
		return ErrPaymentType
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// dateOnly minuit UTC du jour calendaire de t
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}
