//go:build unit

package promotion_test

import (
	"testing"
	"time"

	"promo-service/internal/domain/promotion"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type promoParams struct {
	amountOff  *decimal.Decimal
	percentOff *decimal.Decimal
	maxAmount  *decimal.Decimal
	startsAt   time.Time
	endsAt     time.Time
	limit      *int32
	count      int32
	minOrder   decimal.Decimal
	active     bool
}

func buildPromo(t *testing.T, p promoParams) *promotion.Promotion {
	t.Helper()
	discount, err := promotion.NewDiscount(p.amountOff, p.percentOff, p.maxAmount)
	require.NoError(t, err)
	code, err := promotion.NewCode("SALE10")
	require.NoError(t, err)
	return promotion.Reconstruct(
		uuid.New(), code, discount,
		p.startsAt, p.endsAt,
		p.limit, p.count, p.minOrder, p.active,
		p.startsAt, p.startsAt,
	)
}

func TestValidate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	active := promoParams{
		percentOff: decPtr("10"),
		maxAmount:  decPtr("50000"),
		startsAt:   now.Add(-24 * time.Hour),
		endsAt:     now.Add(24 * time.Hour),
		minOrder:   dec("100000"),
		active:     true,
	}

	t.Run("valid percentage promotion capped at max discount", func(t *testing.T) {
		v := buildPromo(t, active).Validate(now, dec("1000000"), false)

		require.True(t, v.Valid)
		assert.Empty(t, v.Reason)
		assert.True(t, v.DiscountAmount.Equal(dec("50000")), "discount %s", v.DiscountAmount)
		assert.True(t, v.FinalAmount.Equal(dec("950000")), "final %s", v.FinalAmount)
	})

	t.Run("fixed discount never exceeds order amount", func(t *testing.T) {
		p := active
		p.percentOff, p.maxAmount = nil, nil
		p.amountOff = decPtr("20000")
		p.minOrder = decimal.Zero

		v := buildPromo(t, p).Validate(now, dec("15000"), false)

		require.True(t, v.Valid)
		assert.True(t, v.DiscountAmount.Equal(dec("15000")))
		assert.True(t, v.FinalAmount.IsZero())
	})

	t.Run("rejection reasons", func(t *testing.T) {
		tests := []struct {
			name        string
			mutate      func(*promoParams)
			orderAmount string
			alreadyUsed bool
			reason      promotion.Reason
		}{
			{
				name:   "deactivated",
				mutate: func(p *promoParams) { p.active = false },
				reason: promotion.ReasonDeactivated,
			},
			{
				name:   "not started",
				mutate: func(p *promoParams) { p.startsAt = now.Add(time.Hour) },
				reason: promotion.ReasonNotStarted,
			},
			{
				name:   "expired",
				mutate: func(p *promoParams) { p.endsAt = now.Add(-time.Hour) },
				reason: promotion.ReasonExpired,
			},
			{
				name:   "usage exhausted",
				mutate: func(p *promoParams) { p.limit = int32Ptr(1); p.count = 1 },
				reason: promotion.ReasonUsageExhausted,
			},
			{
				name:        "below minimum order",
				mutate:      func(*promoParams) {},
				orderAmount: "99999.99",
				reason:      promotion.ReasonBelowMinimum,
			},
			{
				name:        "already used by customer",
				mutate:      func(*promoParams) {},
				alreadyUsed: true,
				reason:      promotion.ReasonAlreadyUsed,
			},
			{
				name: "deactivation outranks expiry",
				mutate: func(p *promoParams) {
					p.active = false
					p.endsAt = now.Add(-time.Hour)
				},
				reason: promotion.ReasonDeactivated,
			},
			{
				name:        "expiry outranks exhaustion",
				mutate:      func(p *promoParams) { p.endsAt = now.Add(-time.Hour); p.limit = int32Ptr(1); p.count = 1 },
				reason:      promotion.ReasonExpired,
			},
			{
				name:        "exhaustion outranks already used",
				mutate:      func(p *promoParams) { p.limit = int32Ptr(1); p.count = 1 },
				alreadyUsed: true,
				reason:      promotion.ReasonUsageExhausted,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				p := active
				tt.mutate(&p)
				orderAmount := dec("1000000")
				if tt.orderAmount != "" {
					orderAmount = dec(tt.orderAmount)
				}

				v := buildPromo(t, p).Validate(now, orderAmount, tt.alreadyUsed)

				assert.False(t, v.Valid)
				assert.Equal(t, tt.reason, v.Reason)
				assert.NotEmpty(t, v.Message)
			})
		}
	})

	t.Run("order amount exactly at the minimum passes", func(t *testing.T) {
		v := buildPromo(t, active).Validate(now, dec("100000"), false)

		require.True(t, v.Valid)
		assert.True(t, v.DiscountAmount.Equal(dec("10000")))
	})

	t.Run("validate is idempotent", func(t *testing.T) {
		p := buildPromo(t, active)
		first := p.Validate(now, dec("1000000"), false)
		second := p.Validate(now, dec("1000000"), false)
		assert.Equal(t, first, second)
	})

	t.Run("no usage limit means unlimited", func(t *testing.T) {
		p := active
		p.count = 1000000
		v := buildPromo(t, p).Validate(now, dec("1000000"), false)
		assert.True(t, v.Valid)
	})
}
