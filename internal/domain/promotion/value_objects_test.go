//go:build unit

package promotion_test

import (
	"testing"

	"promo-service/internal/domain/promotion"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestNewCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		errIs error
	}{
		{name: "plain uppercase", input: "SALE10", want: "SALE10"},
		{name: "lowercase is normalized", input: "sale10", want: "SALE10"},
		{name: "surrounding whitespace is trimmed", input: "  SALE10  ", want: "SALE10"},
		{name: "minimum length", input: "AB1", want: "AB1"},
		{name: "maximum length", input: "A2345678901234567890", want: "A2345678901234567890"},
		{name: "too short", input: "AB", errIs: promotion.ErrInvalidCode},
		{name: "too long", input: "A23456789012345678901", errIs: promotion.ErrInvalidCode},
		{name: "empty", input: "", errIs: promotion.ErrInvalidCode},
		{name: "inner whitespace", input: "SALE 10", errIs: promotion.ErrInvalidCode},
		{name: "special characters", input: "SALE-10", errIs: promotion.ErrInvalidCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := promotion.NewCode(tt.input)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, code.String())
		})
	}
}

func TestNewDiscount(t *testing.T) {
	tests := []struct {
		name       string
		amountOff  *decimal.Decimal
		percentOff *decimal.Decimal
		maxAmount  *decimal.Decimal
		errIs      error
	}{
		{name: "fixed amount", amountOff: decPtr("5000")},
		{name: "percentage", percentOff: decPtr("10")},
		{name: "percentage with cap", percentOff: decPtr("10"), maxAmount: decPtr("50000")},
		{name: "both kinds set", amountOff: decPtr("5000"), percentOff: decPtr("10"), errIs: promotion.ErrAmbiguousDiscount},
		{name: "neither kind set", errIs: promotion.ErrMissingDiscount},
		{name: "cap on fixed amount", amountOff: decPtr("5000"), maxAmount: decPtr("1000"), errIs: promotion.ErrCapWithoutPercent},
		{name: "negative fixed amount", amountOff: decPtr("-1"), errIs: promotion.ErrInvalidDiscountAmount},
		{name: "zero fixed amount", amountOff: decPtr("0"), errIs: promotion.ErrInvalidDiscountAmount},
		{name: "percentage over 100", percentOff: decPtr("101"), errIs: promotion.ErrInvalidDiscountPercent},
		{name: "negative percentage", percentOff: decPtr("-5"), errIs: promotion.ErrInvalidDiscountPercent},
		{name: "zero percentage", percentOff: decPtr("0"), errIs: promotion.ErrInvalidDiscountPercent},
		{name: "zero cap", percentOff: decPtr("10"), maxAmount: decPtr("0"), errIs: promotion.ErrInvalidMaxDiscount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := promotion.NewDiscount(tt.amountOff, tt.percentOff, tt.maxAmount)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.amountOff != nil, d.IsFixed())
			assert.Equal(t, tt.percentOff != nil, d.IsPercentage())
		})
	}
}

func TestDiscountAmountFor(t *testing.T) {
	tests := []struct {
		name        string
		amountOff   *decimal.Decimal
		percentOff  *decimal.Decimal
		maxAmount   *decimal.Decimal
		orderAmount string
		want        string
	}{
		{
			name:        "percentage capped by max discount",
			percentOff:  decPtr("10"),
			maxAmount:   decPtr("50000"),
			orderAmount: "1000000",
			want:        "50000",
		},
		{
			name:        "percentage under the cap",
			percentOff:  decPtr("10"),
			maxAmount:   decPtr("50000"),
			orderAmount: "200000",
			want:        "20000",
		},
		{
			name:        "percentage without cap",
			percentOff:  decPtr("25"),
			orderAmount: "80000",
			want:        "20000",
		},
		{
			name:        "fixed amount below order",
			amountOff:   decPtr("5000"),
			orderAmount: "20000",
			want:        "5000",
		},
		{
			name:        "fixed amount clamped to order",
			amountOff:   decPtr("20000"),
			orderAmount: "15000",
			want:        "15000",
		},
		{
			name:        "percentage result rounds to two places",
			percentOff:  decPtr("7.5"),
			orderAmount: "99.99",
			want:        "7.5",
		},
		{
			name:        "hundred percent",
			percentOff:  decPtr("100"),
			orderAmount: "123.45",
			want:        "123.45",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := promotion.NewDiscount(tt.amountOff, tt.percentOff, tt.maxAmount)
			require.NoError(t, err)

			got := d.AmountFor(dec(tt.orderAmount))
			assert.True(t, got.Equal(dec(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}
