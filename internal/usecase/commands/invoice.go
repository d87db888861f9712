package commands

import (
	"context"
	"strings"

	"promo-service/internal/infra"
	"promo-service/internal/pkg/clock"
	"promo-service/internal/pkg/errs"
	"promo-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrEmptyInvoiceNumber = errs.New("invoice number is required")

type CreateInvoiceRequest struct {
	Number        string
	Subtotal      decimal.Decimal
	CustomerID    *uuid.UUID
	CustomerPhone *string
}

type InvoiceCommands interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (uuid.UUID, error)
}

type invoiceUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewInvoiceCommands(uow shared.UnitOfWork, clk clock.Clock) InvoiceCommands {
	return &invoiceUseCaseImpl{uow: uow, clock: clk}
}

func (uc *invoiceUseCaseImpl) Create(ctx context.Context, req CreateInvoiceRequest) (uuid.UUID, error) {
	number := strings.TrimSpace(req.Number)
	if number == "" {
		return uuid.Nil, ErrEmptyInvoiceNumber
	}
	if !req.Subtotal.IsPositive() {
		return uuid.Nil, errs.ErrInvalidOrderAmount
	}

	inv := &shared.NewInvoice{
		ID:            uuid.New(),
		Number:        number,
		Subtotal:      req.Subtotal,
		CustomerID:    req.CustomerID,
		CustomerPhone: req.CustomerPhone,
		CreatedAt:     uc.clock.Now(),
	}

	var createdID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Invoices().Create(ctx, tx.DB(), inv)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return errs.ErrDuplicateInvoiceNumber
			}
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}
