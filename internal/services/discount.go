package services

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/models"
)

const (
	MsgWrongCode   = "Wrong code, try again..."
	MsgExpiredCode = "Code is expired..."
)

type DiscountVerifier interface {
	VerifyDiscountCode(ctx context.Context, code string) bool
	VerifyExpirationDate(ctx context.Context, code string, now time.Time) bool
	// GetDiscount renvoie nil, nil si le code n'existe pas
	GetDiscount(ctx context.Context, code string) (*models.Discount, error)
}

// DBDiscountVerifier vérifie les codes directement en base
type DBDiscountVerifier struct {
	store DiscountStore
	log   logrus.FieldLogger
}

func NewDBDiscountVerifier(store DiscountStore, log logrus.FieldLogger) *DBDiscountVerifier {
	return &DBDiscountVerifier{store: store, log: log}
}

func (v *DBDiscountVerifier) GetDiscount(ctx context.Context, code string) (*models.Discount, error) {
	d, err := v.store.ByCode(ctx, code)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (v *DBDiscountVerifier) VerifyDiscountCode(ctx context.Context, code string) bool {
	d, err := v.GetDiscount(ctx, code)
	if err != nil {
		v.log.WithError(err).Warn("⚠️ Erreur lecture code de réduction")
	}
	return d != nil
}

func (v *DBDiscountVerifier) VerifyExpirationDate(ctx context.Context, code string, now time.Time) bool {
	d, err := v.GetDiscount(ctx, code)
	if err != nil || d == nil {
		return false
	}
	return d.ValidAt(now)
}

// DiscountVerifierProxy normalise le code et garde les réductions en cache Redis.
// La validité est toujours recalculée à partir de la date fournie.
type DiscountVerifierProxy struct {
	inner DiscountVerifier
	cache DiscountCache
	log   logrus.FieldLogger
}

func NewDiscountVerifierProxy(inner DiscountVerifier, cache DiscountCache, log logrus.FieldLogger) *DiscountVerifierProxy {
	return &DiscountVerifierProxy{inner: inner, cache: cache, log: log}
}

func (p *DiscountVerifierProxy) GetDiscount(ctx context.Context, code string) (*models.Discount, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}

	if p.cache != nil {
		if d, ok := p.cache.Get(ctx, code); ok {
			return d, nil
		}
	}

	d, err := p.inner.GetDiscount(ctx, code)
	if err != nil || d == nil {
		return d, err
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, *d); err != nil {
			p.log.WithError(err).Warn("⚠️ Mise en cache du code impossible")
		}
	}
	return d, nil
}

func (p *DiscountVerifierProxy) VerifyDiscountCode(ctx context.Context, code string) bool {
	d, err := p.GetDiscount(ctx, code)
	return err == nil && d != nil
}

func (p *DiscountVerifierProxy) VerifyExpirationDate(ctx context.Context, code string, now time.Time) bool {
	d, err := p.GetDiscount(ctx, code)
	if err != nil || d == nil {
		return false
	}
	return d.ValidAt(now)
}

// EvaluateCode vérifie le code saisi; en cas d'échec le message remplace le code
func EvaluateCode(ctx context.Context, verifier DiscountVerifier, code string, now time.Time) (models.DiscountValidation, error) {
	d, err := verifier.GetDiscount(ctx, code)
	if err != nil {
		return models.DiscountValidation{}, err
	}
	if d == nil {
		return models.DiscountValidation{ErrorMessage: MsgWrongCode, Code: MsgWrongCode}, nil
	}
	if !d.ValidAt(now) {
		return models.DiscountValidation{ErrorMessage: MsgExpiredCode, Code: MsgExpiredCode}, nil
	}
	return models.DiscountValidation{
		IsValid: true,
		Amount:  d.Amount,
		Type:    d.Type,
		Code:    d.Code,
	}, nil
}

// ApplyDiscount total après réduction, jamais négatif
func ApplyDiscount(subtotal, amount float64, discountType models.DiscountType) float64 {
	var total float64
	switch discountType {
	case models.AmountOff:
		total = subtotal - amount
	case models.PercentageOff:
		total = subtotal * (100 - amount) / 100
	default:
		total = subtotal
	}
	if total < 0 {
		return 0
	}
	return total
}
