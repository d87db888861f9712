package request

import (
	"promo-service/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateInvoiceRequest struct {
	Number        string          `json:"number" binding:"required,max=50"`
	Subtotal      decimal.Decimal `json:"subtotal" binding:"required"`
	CustomerID    *uuid.UUID      `json:"customer_id"`
	CustomerPhone *string         `json:"customer_phone" binding:"omitempty,max=20"`
}

func (r *CreateInvoiceRequest) ToCommand() commands.CreateInvoiceRequest {
	return commands.CreateInvoiceRequest{
		Number:        r.Number,
		Subtotal:      r.Subtotal,
		CustomerID:    r.CustomerID,
		CustomerPhone: r.CustomerPhone,
	}
}
