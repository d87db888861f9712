package response

import (
	"time"

	"promo-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceResponse struct {
	ID             uuid.UUID       `json:"id"`
	Number         string          `json:"number"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	CustomerID     *uuid.UUID      `json:"customerId,omitempty"`
	CustomerPhone  *string         `json:"customerPhone,omitempty"`
	PromotionID    *uuid.UUID      `json:"promotionId,omitempty"`
	PromotionCode  *string         `json:"promotionCode,omitempty"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FinalAmount    decimal.Decimal `json:"finalAmount"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func FromInvoiceView(v *queries.InvoiceView) *InvoiceResponse {
	return &InvoiceResponse{
		ID:             v.ID,
		Number:         v.Number,
		Subtotal:       v.Subtotal,
		CustomerID:     v.CustomerID,
		CustomerPhone:  v.CustomerPhone,
		PromotionID:    v.PromotionID,
		PromotionCode:  v.PromotionCode,
		DiscountAmount: v.DiscountAmount,
		FinalAmount:    v.FinalAmount,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}
