package request

import (
	"time"

	"promo-service/internal/pkg/patch"
	"promo-service/internal/usecase/commands"
	"promo-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreatePromotionRequest struct {
	Code              string           `json:"code" binding:"required,min=3,max=20"`
	AmountOff         *decimal.Decimal `json:"amount_off"`
	PercentOff        *decimal.Decimal `json:"percent_off"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount"`
	StartsAt          time.Time        `json:"starts_at" binding:"required"`
	EndsAt            time.Time        `json:"ends_at" binding:"required"`
	UsageLimit        *int32           `json:"usage_limit" binding:"omitempty,min=1"`
	MinOrderAmount    decimal.Decimal  `json:"min_order_amount"`
	Active            *bool            `json:"active"`
}

func (r *CreatePromotionRequest) ToCommand() commands.CreatePromotionRequest {
	return commands.CreatePromotionRequest{
		Code:              r.Code,
		AmountOff:         r.AmountOff,
		PercentOff:        r.PercentOff,
		MaxDiscountAmount: r.MaxDiscountAmount,
		StartsAt:          r.StartsAt,
		EndsAt:            r.EndsAt,
		UsageLimit:        r.UsageLimit,
		MinOrderAmount:    r.MinOrderAmount,
		Active:            patch.Coalesce(r.Active, true),
	}
}

type UpdatePromotionRequest struct {
	AmountOff         *decimal.Decimal `json:"amount_off"`
	PercentOff        *decimal.Decimal `json:"percent_off"`
	MaxDiscountAmount *decimal.Decimal `json:"max_discount_amount"`
	StartsAt          *time.Time       `json:"starts_at"`
	EndsAt            *time.Time       `json:"ends_at"`
	UsageLimit        *int32           `json:"usage_limit" binding:"omitempty,min=1"`
	MinOrderAmount    *decimal.Decimal `json:"min_order_amount"`
	Active            *bool            `json:"active"`
}

func (r *UpdatePromotionRequest) ToCommand() commands.UpdatePromotionRequest {
	return commands.UpdatePromotionRequest{
		AmountOff:         r.AmountOff,
		PercentOff:        r.PercentOff,
		MaxDiscountAmount: r.MaxDiscountAmount,
		StartsAt:          r.StartsAt,
		EndsAt:            r.EndsAt,
		UsageLimit:        r.UsageLimit,
		MinOrderAmount:    r.MinOrderAmount,
		Active:            r.Active,
	}
}

type ValidatePromotionRequest struct {
	Code          string          `json:"code" binding:"required"`
	OrderAmount   decimal.Decimal `json:"order_amount" binding:"required"`
	CustomerID    *uuid.UUID      `json:"customer_id"`
	CustomerPhone *string         `json:"customer_phone"`
}

func (r *ValidatePromotionRequest) ToInput() queries.ValidateInput {
	return queries.ValidateInput{
		Code:          r.Code,
		OrderAmount:   r.OrderAmount,
		CustomerID:    r.CustomerID,
		CustomerPhone: r.CustomerPhone,
	}
}

type ApplyPromotionRequest struct {
	Code string `json:"code" binding:"required"`
}
