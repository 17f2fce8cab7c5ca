package services

import (
	"context"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// StripeGateway paiement carte via PaymentIntent
type StripeGateway struct {
	currency string
	create   func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

func NewStripeGateway(secretKey, currency string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{currency: strings.ToLower(currency), create: paymentintent.New}
}

func (g *StripeGateway) CreateIntent(_ context.Context, amount float64, reference string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(g.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("reference", reference)

	pi, err := g.create(params)
	if err != nil {
		return "", errors.Wrap(err, "création payment intent")
	}
	return pi.ID, nil
}
