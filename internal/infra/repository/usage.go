package repository

import (
	"context"

	"promo-service/internal/infra"
	"promo-service/internal/infra/db"
	"promo-service/internal/pkg/pgconv"
	"promo-service/internal/usecase/shared"

	"github.com/google/uuid"
)

type UsageRepository struct{}

func NewUsageRepository() *UsageRepository {
	return &UsageRepository{}
}

const insertUsageSQL = `
INSERT INTO promotion_usages (
	id, promotion_id, invoice_id, customer_id, customer_phone,
	discount_applied, used_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

func (r *UsageRepository) Create(ctx context.Context, tx db.DBTX, rec *shared.UsageRecord) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, insertUsageSQL,
		pgconv.UUIDToPgtype(rec.ID),
		pgconv.UUIDToPgtype(rec.PromotionID),
		pgconv.UUIDToPgtype(rec.InvoiceID),
		pgconv.UUIDPtrToPgtype(rec.CustomerID),
		pgconv.StringPtrToPgtype(rec.CustomerPhone),
		pgconv.NumericFromDecimal(rec.DiscountApplied),
		pgconv.TimeToPgtype(rec.UsedAt),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapPgErr("failed to record promotion usage", err)
	}
	return id, nil
}
