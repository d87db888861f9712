package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PromotionView represents read-optimized promotion data
type PromotionView struct {
	ID                uuid.UUID        `json:"id"`
	Code              string           `json:"code"`
	AmountOff         *decimal.Decimal `json:"amount_off,omitempty"`
	PercentOff        *decimal.Decimal `json:"percent_off,omitempty"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount,omitempty"`
	StartsAt          time.Time        `json:"starts_at"`
	EndsAt            time.Time        `json:"ends_at"`
	UsageLimit        *int32           `json:"usage_limit,omitempty"`
	UsageCount        int32            `json:"usage_count"`
	MinOrderAmount    decimal.Decimal  `json:"min_order_amount"`
	Active            bool             `json:"active"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// UsageListItem represents one entry of a promotion's usage ledger
type UsageListItem struct {
	ID              uuid.UUID       `json:"id"`
	PromotionID     uuid.UUID       `json:"promotion_id"`
	InvoiceID       uuid.UUID       `json:"invoice_id"`
	InvoiceNumber   string          `json:"invoice_number"`
	CustomerID      *uuid.UUID      `json:"customer_id,omitempty"`
	CustomerPhone   *string         `json:"customer_phone,omitempty"`
	DiscountApplied decimal.Decimal `json:"discount_applied"`
	UsedAt          time.Time       `json:"used_at"`
}

// InvoiceView represents read-optimized invoice data
type InvoiceView struct {
	ID             uuid.UUID        `json:"id"`
	Number         string           `json:"number"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	CustomerID     *uuid.UUID       `json:"customer_id,omitempty"`
	CustomerPhone  *string          `json:"customer_phone,omitempty"`
	PromotionID    *uuid.UUID       `json:"promotion_id,omitempty"`
	PromotionCode  *string          `json:"promotion_code,omitempty"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	FinalAmount    decimal.Decimal  `json:"final_amount"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
