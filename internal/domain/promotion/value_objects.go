package promotion

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCode            = errors.New("invalid promotion code format")
	ErrInvalidDiscountAmount  = errors.New("fixed discount amount must be positive")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be greater than 0 and at most 100")
	ErrInvalidMaxDiscount     = errors.New("maximum discount amount must be positive")
	ErrCapWithoutPercent      = errors.New("maximum discount cap applies only to percentage discounts")
	ErrAmbiguousDiscount      = errors.New("discount must be either fixed amount or percentage, not both")
	ErrMissingDiscount        = errors.New("discount must have either fixed amount or percentage")
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

// NewCode normalizes to uppercase so lookups are case-insensitive.
func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !codeRegex.MatchString(code) {
		return Code(""), ErrInvalidCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

// Discount is a sum of the two discount kinds; exactly one side is set.
type Discount struct {
	amountOff  *decimal.Decimal
	percentOff *decimal.Decimal
	maxAmount  *decimal.Decimal
}

func NewFixedDiscount(amountOff decimal.Decimal) (Discount, error) {
	if !amountOff.IsPositive() {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{amountOff: &amountOff}, nil
}

func NewPercentDiscount(percentOff decimal.Decimal, maxAmount *decimal.Decimal) (Discount, error) {
	if !percentOff.IsPositive() || percentOff.GreaterThan(decimal.NewFromInt(100)) {
		return Discount{}, ErrInvalidDiscountPercent
	}
	if maxAmount != nil && !maxAmount.IsPositive() {
		return Discount{}, ErrInvalidMaxDiscount
	}
	return Discount{percentOff: &percentOff, maxAmount: maxAmount}, nil
}

// NewDiscount builds a Discount from optional request fields, enforcing
// the fixed-XOR-percentage rule at construction.
func NewDiscount(amountOff, percentOff, maxAmount *decimal.Decimal) (Discount, error) {
	if amountOff != nil && percentOff != nil {
		return Discount{}, ErrAmbiguousDiscount
	}
	if amountOff == nil && percentOff == nil {
		return Discount{}, ErrMissingDiscount
	}
	if amountOff != nil {
		if maxAmount != nil {
			return Discount{}, ErrCapWithoutPercent
		}
		return NewFixedDiscount(*amountOff)
	}
	return NewPercentDiscount(*percentOff, maxAmount)
}

func (d Discount) IsPercentage() bool {
	return d.percentOff != nil
}

func (d Discount) IsFixed() bool {
	return d.amountOff != nil
}

func (d Discount) AmountOff() *decimal.Decimal {
	return d.amountOff
}

func (d Discount) PercentOff() *decimal.Decimal {
	return d.percentOff
}

func (d Discount) MaxAmount() *decimal.Decimal {
	return d.maxAmount
}

// AmountFor computes the discount for an order subtotal. Percentage
// discounts are clamped to the cap when one is set; no discount ever
// exceeds the order amount. The result carries two decimal places.
func (d Discount) AmountFor(orderAmount decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	if d.IsPercentage() {
		amount = orderAmount.Mul(*d.percentOff).Div(decimal.NewFromInt(100))
		if d.maxAmount != nil && amount.GreaterThan(*d.maxAmount) {
			amount = *d.maxAmount
		}
	} else {
		amount = *d.amountOff
	}
	if amount.GreaterThan(orderAmount) {
		amount = orderAmount
	}
	return amount.Round(2)
}
