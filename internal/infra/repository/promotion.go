package repository

import (
	"context"
	"time"

	"promo-service/internal/domain/promotion"
	"promo-service/internal/infra"
	"promo-service/internal/infra/db"
	"promo-service/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PromotionRepository struct{}

func NewPromotionRepository() *PromotionRepository {
	return &PromotionRepository{}
}

const insertPromotionSQL = `
INSERT INTO promotions (
	id, code, amount_off, percent_off, max_discount_amount,
	starts_at, ends_at, usage_limit, usage_count,
	min_order_amount, active, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id`

func (r *PromotionRepository) Create(ctx context.Context, tx db.DBTX, p *promotion.Promotion) (uuid.UUID, error) {
	d := p.Discount()
	var id uuid.UUID
	err := tx.QueryRow(ctx, insertPromotionSQL,
		pgconv.UUIDToPgtype(p.ID()),
		p.Code().String(),
		pgconv.NumericFromDecimalPtr(d.AmountOff()),
		pgconv.NumericFromDecimalPtr(d.PercentOff()),
		pgconv.NumericFromDecimalPtr(d.MaxAmount()),
		pgconv.TimeToPgtype(p.StartsAt()),
		pgconv.TimeToPgtype(p.EndsAt()),
		pgconv.Int32PtrToPgtype(p.UsageLimit()),
		p.UsageCount(),
		pgconv.NumericFromDecimal(p.MinOrderAmount()),
		p.IsActive(),
		pgconv.TimeToPgtype(p.CreatedAt()),
		pgconv.TimeToPgtype(p.UpdatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapPgErr("failed to create promotion", err)
	}
	return id, nil
}

const updatePromotionSQL = `
UPDATE promotions SET
	amount_off = $2,
	percent_off = $3,
	max_discount_amount = $4,
	starts_at = $5,
	ends_at = $6,
	usage_limit = $7,
	min_order_amount = $8,
	active = $9,
	updated_at = $10
WHERE id = $1`

func (r *PromotionRepository) Update(ctx context.Context, tx db.DBTX, p *promotion.Promotion) error {
	d := p.Discount()
	tag, err := tx.Exec(ctx, updatePromotionSQL,
		pgconv.UUIDToPgtype(p.ID()),
		pgconv.NumericFromDecimalPtr(d.AmountOff()),
		pgconv.NumericFromDecimalPtr(d.PercentOff()),
		pgconv.NumericFromDecimalPtr(d.MaxAmount()),
		pgconv.TimeToPgtype(p.StartsAt()),
		pgconv.TimeToPgtype(p.EndsAt()),
		pgconv.Int32PtrToPgtype(p.UsageLimit()),
		pgconv.NumericFromDecimal(p.MinOrderAmount()),
		p.IsActive(),
		pgconv.TimeToPgtype(p.UpdatedAt()),
	)
	if err != nil {
		return infra.WrapPgErr("failed to update promotion", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("promotion not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PromotionRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM promotions WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return infra.WrapPgErr("failed to delete promotion", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("promotion not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PromotionRepository) Deactivate(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) error {
	tag, err := tx.Exec(ctx,
		`UPDATE promotions SET active = false, updated_at = $2 WHERE id = $1`,
		pgconv.UUIDToPgtype(id), pgconv.TimeToPgtype(now))
	if err != nil {
		return infra.WrapPgErr("failed to deactivate promotion", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("promotion not found", nil, infra.KindNotFound)
	}
	return nil
}

// The WHERE clause makes the increment conditional so two applies racing
// for the last redemption cannot both succeed.
const incrementUsageSQL = `
UPDATE promotions
SET usage_count = usage_count + 1, updated_at = $2
WHERE id = $1
  AND active
  AND (usage_limit IS NULL OR usage_count < usage_limit)`

func (r *PromotionRepository) IncrementUsage(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, incrementUsageSQL, pgconv.UUIDToPgtype(id), pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapPgErr("failed to increment promotion usage", err)
	}
	return tag.RowsAffected(), nil
}
