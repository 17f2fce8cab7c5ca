package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayana_shop/internal/models"
)

var discountNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func testDiscounts() fakeDiscounts {
	return fakeDiscounts{
		"SPRING10": {ID: 1, Code: "SPRING10", Amount: 10, Type: models.PercentageOff,
			Begins: discountNow.AddDate(0, 0, -1), Ends: discountNow.AddDate(0, 0, 1)},
		"FLAT5": {ID: 2, Code: "FLAT5", Amount: 5, Type: models.AmountOff,
			Begins: discountNow.AddDate(0, 0, -1), Ends: discountNow.AddDate(0, 0, 1)},
		"OLD": {ID: 3, Code: "OLD", Amount: 50, Type: models.PercentageOff,
			Begins: discountNow.AddDate(0, -2, 0), Ends: discountNow.AddDate(0, -1, 0)},
	}
}

func TestApplyDiscount(t *testing.T) {
	assert.InDelta(t, 90.0, ApplyDiscount(100, 10, models.PercentageOff), 1e-9)
	assert.InDelta(t, 95.0, ApplyDiscount(100, 5, models.AmountOff), 1e-9)
	assert.Equal(t, 0.0, ApplyDiscount(3, 5, models.AmountOff))
	assert.Equal(t, 100.0, ApplyDiscount(100, 5, models.DiscountType(9)))
}

func TestDiscountValidityIsStrict(t *testing.T) {
	d := models.Discount{Begins: discountNow, Ends: discountNow.Add(time.Hour)}
	assert.False(t, d.ValidAt(discountNow))
	assert.True(t, d.ValidAt(discountNow.Add(time.Minute)))
	assert.False(t, d.ValidAt(discountNow.Add(time.Hour)))
}

func TestEvaluateCode(t *testing.T) {
	ctx := context.Background()
	v := NewDBDiscountVerifier(testDiscounts(), quietLog())

	res, err := EvaluateCode(ctx, v, "SPRING10", discountNow)
	require.NoError(t, err)
	assert.True(t, res.IsValid)
	assert.Equal(t, 10.0, res.Amount)
	assert.Equal(t, "SPRING10", res.Code)

	res, err = EvaluateCode(ctx, v, "NOPE", discountNow)
	require.NoError(t, err)
	assert.False(t, res.IsValid)
	assert.Equal(t, MsgWrongCode, res.Code)

	res, err = EvaluateCode(ctx, v, "OLD", discountNow)
	require.NoError(t, err)
	assert.False(t, res.IsValid)
	assert.Equal(t, MsgExpiredCode, res.ErrorMessage)
}

func TestDBVerifierChecks(t *testing.T) {
	ctx := context.Background()
	v := NewDBDiscountVerifier(testDiscounts(), quietLog())

	assert.True(t, v.VerifyDiscountCode(ctx, "OLD"))
	assert.False(t, v.VerifyExpirationDate(ctx, "OLD", discountNow))
	assert.True(t, v.VerifyExpirationDate(ctx, "FLAT5", discountNow))
	assert.False(t, v.VerifyDiscountCode(ctx, "MISSING"))
}

func TestProxyCachesAndTrims(t *testing.T) {
	ctx := context.Background()
	cache := &fakeDiscountCache{items: map[string]models.Discount{}}
	p := NewDiscountVerifierProxy(NewDBDiscountVerifier(testDiscounts(), quietLog()), cache, quietLog())

	d, err := p.GetDiscount(ctx, "  FLAT5 ")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Contains(t, cache.items, "FLAT5")

	_, err = p.GetDiscount(ctx, "FLAT5")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	d, err = p.GetDiscount(ctx, "   ")
	require.NoError(t, err)
	assert.Nil(t, d)

	// la validité suit la date fournie, même pour un code en cache
	assert.False(t, p.VerifyExpirationDate(ctx, "FLAT5", discountNow.AddDate(0, 0, 2)))
}
