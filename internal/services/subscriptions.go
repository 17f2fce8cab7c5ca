package services

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/models"
)

const (
	MonthlySurprise   = "Monthly surprise"
	ThreeMonthPackage = "Three month Package"
	SixMonthPackage   = "Six month Package"
)

var ErrUnknownPackage = errors.New("forfait d'abonnement inconnu")

// Package forfait proposé sur la page abonnements, prix en BAM
type Package struct {
	Name   string
	Months int
	Price  float64
}

// Packages seuls forfaits vendus, le prix envoyé par le formulaire est ignoré
var Packages = []Package{
	{Name: MonthlySurprise, Months: 1, Price: 45},
	{Name: ThreeMonthPackage, Months: 3, Price: 120},
	{Name: SixMonthPackage, Months: 6, Price: 220},
}

func LookupPackage(name string) (Package, bool) {
	name = strings.TrimSpace(name)
	for _, p := range Packages {
		if strings.EqualFold(name, p.Name) {
			return p, true
		}
	}
	return Package{}, false
}

// PackageMonths durée du forfait d'après son nom
func PackageMonths(name string) int {
	if p, ok := LookupPackage(name); ok {
		return p.Months
	}
	return 1
}

type SubscriptionService struct {
	subs     SubscriptionStore
	payments PaymentStore
	clock    Clock
	log      logrus.FieldLogger
}

func NewSubscriptionService(subs SubscriptionStore, payments PaymentStore, clock Clock, log logrus.FieldLogger) *SubscriptionService {
	return &SubscriptionService{subs: subs, payments: payments, clock: clock, log: log}
}

// Create enregistre le paiement puis l'abonnement qui le référence
func (s *SubscriptionService) Create(ctx context.Context, customerID string, sub *models.Subscription, payment models.Payment) error {
	pkg, ok := LookupPackage(sub.Name)
	if !ok {
		return ErrUnknownPackage
	}
	if sub.DeliveryDate.IsZero() || dateOnly(sub.DeliveryDate).Before(dateOnly(s.clock.now())) {
		return ErrDeliveryDate
	}
	if strings.TrimSpace(payment.DeliveryAddress) == "" {
		return ErrDeliveryAddress
	}
	if payment.PaymentType == "" {
		payment.PaymentType = models.PaymentCash
	}

	sub.Name = pkg.Name
	sub.Price = pkg.Price
	payment.PayedAmount = pkg.Price
	if err := s.payments.Create(ctx, &payment); err != nil {
		return err
	}

	sub.CustomerID = customerID
	sub.PaymentID = payment.ID
	if err := s.subs.Create(ctx, sub); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"subscription_id": sub.ID,
		"months":          pkg.Months,
	}).Info("🌸 Abonnement enregistré")
	return nil
}

func (s *SubscriptionService) ByCustomer(ctx context.Context, customerID string) ([]models.Subscription, error) {
	return s.subs.ByCustomer(ctx, customerID)
}

func (s *SubscriptionService) Get(ctx context.Context, customerID string, id int64) (*models.Subscription, error) {
	subs, err := s.subs.ByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if subs[i].ID == id {
			return &subs[i], nil
		}
	}
	return nil, ErrNotFound
}
