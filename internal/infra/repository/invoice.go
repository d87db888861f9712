package repository

import (
	"context"
	"time"

	"promo-service/internal/infra"
	"promo-service/internal/infra/db"
	"promo-service/internal/pkg/pgconv"
	"promo-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceRepository struct{}

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{}
}

const insertInvoiceSQL = `
INSERT INTO invoices (
	id, number, subtotal, customer_id, customer_phone,
	discount_amount, final_amount, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, 0, $3, $6, $6)
RETURNING id`

func (r *InvoiceRepository) Create(ctx context.Context, tx db.DBTX, inv *shared.NewInvoice) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, insertInvoiceSQL,
		pgconv.UUIDToPgtype(inv.ID),
		inv.Number,
		pgconv.NumericFromDecimal(inv.Subtotal),
		pgconv.UUIDPtrToPgtype(inv.CustomerID),
		pgconv.StringPtrToPgtype(inv.CustomerPhone),
		pgconv.TimeToPgtype(inv.CreatedAt),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapPgErr("failed to create invoice", err)
	}
	return id, nil
}

const applyPromotionSQL = `
UPDATE invoices SET
	promotion_id = $2,
	discount_amount = $3,
	final_amount = $4,
	updated_at = $5
WHERE id = $1 AND promotion_id IS NULL`

func (r *InvoiceRepository) ApplyPromotion(ctx context.Context, tx db.DBTX, invoiceID, promotionID uuid.UUID, discount, finalAmount decimal.Decimal, now time.Time) error {
	tag, err := tx.Exec(ctx, applyPromotionSQL,
		pgconv.UUIDToPgtype(invoiceID),
		pgconv.UUIDToPgtype(promotionID),
		pgconv.NumericFromDecimal(discount),
		pgconv.NumericFromDecimal(finalAmount),
		pgconv.TimeToPgtype(now),
	)
	if err != nil {
		return infra.WrapPgErr("failed to apply promotion to invoice", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("invoice not found or already discounted", nil, infra.KindNotFound)
	}
	return nil
}
