package promotion

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEndNotAfterStart   = errors.New("end date must be strictly after start date")
	ErrUsageLimitTooSmall = errors.New("usage limit must be at least 1")
	ErrNegativeMinOrder   = errors.New("minimum order amount cannot be negative")
)

type Promotion struct {
	id             uuid.UUID
	code           Code
	discount       Discount
	startsAt       time.Time
	endsAt         time.Time
	usageLimit     *int32
	usageCount     int32
	minOrderAmount decimal.Decimal
	active         bool
	createdAt      time.Time
	updatedAt      time.Time
}

func NewPromotion(
	id uuid.UUID,
	code string,
	discount Discount,
	startsAt, endsAt time.Time,
	usageLimit *int32,
	minOrderAmount decimal.Decimal,
	active bool,
	now time.Time,
) (*Promotion, error) {
	promoCode, err := NewCode(code)
	if err != nil {
		return nil, err
	}
	if !endsAt.After(startsAt) {
		return nil, ErrEndNotAfterStart
	}
	if usageLimit != nil && *usageLimit < 1 {
		return nil, ErrUsageLimitTooSmall
	}
	if minOrderAmount.IsNegative() {
		return nil, ErrNegativeMinOrder
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Promotion{
		id:             id,
		code:           promoCode,
		discount:       discount,
		startsAt:       startsAt,
		endsAt:         endsAt,
		usageLimit:     usageLimit,
		usageCount:     0,
		minOrderAmount: minOrderAmount,
		active:         active,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// Reconstruct rebuilds an aggregate from persisted state without
// re-running construction-time validation.
func Reconstruct(
	id uuid.UUID,
	code Code,
	discount Discount,
	startsAt, endsAt time.Time,
	usageLimit *int32,
	usageCount int32,
	minOrderAmount decimal.Decimal,
	active bool,
	createdAt, updatedAt time.Time,
) *Promotion {
	return &Promotion{
		id:             id,
		code:           code,
		discount:       discount,
		startsAt:       startsAt,
		endsAt:         endsAt,
		usageLimit:     usageLimit,
		usageCount:     usageCount,
		minOrderAmount: minOrderAmount,
		active:         active,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// IsUsableAt reports whether the promotion can currently be redeemed:
// active AND inside the validity window AND under the usage limit.
// The active flag alone is necessary but not sufficient.
func (p *Promotion) IsUsableAt(t time.Time) bool {
	if !p.active {
		return false
	}
	if t.Before(p.startsAt) || t.After(p.endsAt) {
		return false
	}
	if p.usageLimit != nil && p.usageCount >= *p.usageLimit {
		return false
	}
	return true
}

func (p *Promotion) ID() uuid.UUID                   { return p.id }
func (p *Promotion) Code() Code                      { return p.code }
func (p *Promotion) Discount() Discount              { return p.discount }
func (p *Promotion) StartsAt() time.Time             { return p.startsAt }
func (p *Promotion) EndsAt() time.Time               { return p.endsAt }
func (p *Promotion) UsageLimit() *int32              { return p.usageLimit }
func (p *Promotion) UsageCount() int32               { return p.usageCount }
func (p *Promotion) MinOrderAmount() decimal.Decimal { return p.minOrderAmount }
func (p *Promotion) IsActive() bool                  { return p.active }
func (p *Promotion) CreatedAt() time.Time            { return p.createdAt }
func (p *Promotion) UpdatedAt() time.Time            { return p.updatedAt }
