package response

import (
	"time"

	"promo-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PromotionResponse struct {
	ID                uuid.UUID        `json:"id"`
	Code              string           `json:"code"`
	AmountOff         *decimal.Decimal `json:"amountOff,omitempty"`
	PercentOff        *decimal.Decimal `json:"percentOff,omitempty"`
	MaxDiscountAmount *decimal.Decimal `json:"maxDiscountAmount,omitempty"`
	StartsAt          time.Time        `json:"startsAt"`
	EndsAt            time.Time        `json:"endsAt"`
	UsageLimit        *int32           `json:"usageLimit,omitempty"`
	UsageCount        int32            `json:"usageCount"`
	MinOrderAmount    decimal.Decimal  `json:"minOrderAmount"`
	Active            bool             `json:"active"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

type ValidationResponse struct {
	Valid          bool               `json:"valid"`
	Reason         string             `json:"reason,omitempty"`
	Message        string             `json:"message"`
	DiscountAmount decimal.Decimal    `json:"discountAmount"`
	FinalAmount    decimal.Decimal    `json:"finalAmount"`
	Promotion      *PromotionResponse `json:"promotion,omitempty"`
}

type UsageResponse struct {
	ID              uuid.UUID       `json:"id"`
	PromotionID     uuid.UUID       `json:"promotionId"`
	InvoiceID       uuid.UUID       `json:"invoiceId"`
	InvoiceNumber   string          `json:"invoiceNumber"`
	CustomerID      *uuid.UUID      `json:"customerId,omitempty"`
	CustomerPhone   *string         `json:"customerPhone,omitempty"`
	DiscountApplied decimal.Decimal `json:"discountApplied"`
	UsedAt          time.Time       `json:"usedAt"`
}

type UsagePageResponse struct {
	Items      []*UsageResponse `json:"items"`
	NextCursor *string          `json:"nextCursor,omitempty"`
}

type DeletePromotionResponse struct {
	Deactivated bool `json:"deactivated"`
}

func FromPromotionView(v *queries.PromotionView) *PromotionResponse {
	return &PromotionResponse{
		ID:                v.ID,
		Code:              v.Code,
		AmountOff:         v.AmountOff,
		PercentOff:        v.PercentOff,
		MaxDiscountAmount: v.MaxDiscountAmount,
		StartsAt:          v.StartsAt,
		EndsAt:            v.EndsAt,
		UsageLimit:        v.UsageLimit,
		UsageCount:        v.UsageCount,
		MinOrderAmount:    v.MinOrderAmount,
		Active:            v.Active,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

func FromPromotionViews(views []*queries.PromotionView) []*PromotionResponse {
	out := make([]*PromotionResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromPromotionView(v))
	}
	return out
}

func FromValidationResult(r *queries.ValidationResult) *ValidationResponse {
	resp := &ValidationResponse{
		Valid:          r.Valid,
		Reason:         string(r.Reason),
		Message:        r.Message,
		DiscountAmount: r.DiscountAmount,
		FinalAmount:    r.FinalAmount,
	}
	if r.Promotion != nil {
		resp.Promotion = FromPromotionView(r.Promotion)
	}
	return resp
}

func FromUsageListItem(u *queries.UsageListItem) *UsageResponse {
	return &UsageResponse{
		ID:              u.ID,
		PromotionID:     u.PromotionID,
		InvoiceID:       u.InvoiceID,
		InvoiceNumber:   u.InvoiceNumber,
		CustomerID:      u.CustomerID,
		CustomerPhone:   u.CustomerPhone,
		DiscountApplied: u.DiscountApplied,
		UsedAt:          u.UsedAt,
	}
}

func FromUsagePage(items []*queries.UsageListItem, next *queries.Cursor) *UsagePageResponse {
	page := &UsagePageResponse{Items: make([]*UsageResponse, 0, len(items))}
	for _, u := range items {
		page.Items = append(page.Items, FromUsageListItem(u))
	}
	if next != nil {
		after := next.After
		page.NextCursor = &after
	}
	return page
}
