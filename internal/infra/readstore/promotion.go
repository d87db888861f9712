package readstore

import (
	"context"
	"time"

	"promo-service/internal/infra"
	"promo-service/internal/infra/db"
	"promo-service/internal/pkg/pgconv"
	"promo-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type PromotionReadStore struct {
	db db.DBTX
}

func NewPromotionReadStore(dbtx db.DBTX) *PromotionReadStore {
	return &PromotionReadStore{db: dbtx}
}

const promotionColumns = `
	id, code, amount_off, percent_off, max_discount_amount,
	starts_at, ends_at, usage_limit, usage_count,
	min_order_amount, active, created_at, updated_at`

func (r *PromotionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PromotionView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+promotionColumns+` FROM promotions WHERE id = $1`,
		pgconv.UUIDToPgtype(id))
	view, err := scanPromotionView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("promotion not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find promotion by id", err)
	}
	return view, nil
}

func (r *PromotionReadStore) FindByCode(ctx context.Context, code string) (*queries.PromotionView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+promotionColumns+` FROM promotions WHERE code = $1`,
		code)
	view, err := scanPromotionView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("promotion not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find promotion by code", err)
	}
	return view, nil
}

const listPromotionsSQL = `
SELECT ` + promotionColumns + `
FROM promotions
WHERE ($1::boolean IS FALSE OR active)
  AND ($2::timestamptz IS NULL OR (
	active
	AND starts_at <= $2 AND ends_at >= $2
	AND (usage_limit IS NULL OR usage_count < usage_limit)))
ORDER BY created_at DESC, id DESC`

func (r *PromotionReadStore) List(ctx context.Context, activeOnly bool, usableAt *time.Time) ([]*queries.PromotionView, error) {
	usable := pgtype.Timestamptz{Valid: false}
	if usableAt != nil {
		usable = pgconv.TimeToPgtype(*usableAt)
	}
	rows, err := r.db.Query(ctx, listPromotionsSQL, activeOnly, usable)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list promotions", err)
	}
	defer rows.Close()

	var views []*queries.PromotionView
	for rows.Next() {
		view, serr := scanPromotionView(rows)
		if serr != nil {
			return nil, infra.WrapRepoErr("failed to scan promotion row", serr)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate promotion rows", err)
	}
	return views, nil
}

const hasCustomerUsageSQL = `
SELECT EXISTS (
	SELECT 1 FROM promotion_usages
	WHERE promotion_id = $1
	  AND (($2::uuid IS NOT NULL AND customer_id = $2)
	    OR ($3::text IS NOT NULL AND customer_phone = $3)))`

func (r *PromotionReadStore) HasCustomerUsage(ctx context.Context, promotionID uuid.UUID, customerID *uuid.UUID, customerPhone *string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, hasCustomerUsageSQL,
		pgconv.UUIDToPgtype(promotionID),
		pgconv.UUIDPtrToPgtype(customerID),
		pgconv.StringPtrToPgtype(customerPhone),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check customer usage", err)
	}
	return exists, nil
}

func (r *PromotionReadStore) HasAnyUsage(ctx context.Context, promotionID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM promotion_usages WHERE promotion_id = $1)`,
		pgconv.UUIDToPgtype(promotionID)).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check promotion usage", err)
	}
	return exists, nil
}

const usageColumns = `
	u.id, u.promotion_id, u.invoice_id, i.number,
	u.customer_id, u.customer_phone, u.discount_applied, u.used_at`

func (r *PromotionReadStore) FindUsagesFirstPage(ctx context.Context, promotionID uuid.UUID, limit int32) ([]*queries.UsageListItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+usageColumns+`
		FROM promotion_usages u
		JOIN invoices i ON i.id = u.invoice_id
		WHERE u.promotion_id = $1
		ORDER BY u.used_at DESC, u.id DESC
		LIMIT $2`,
		pgconv.UUIDToPgtype(promotionID), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list promotion usages", err)
	}
	defer rows.Close()
	return collectUsageRows(rows)
}

func (r *PromotionReadStore) FindUsagesKeyset(ctx context.Context, promotionID uuid.UUID, lastUsedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.UsageListItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+usageColumns+`
		FROM promotion_usages u
		JOIN invoices i ON i.id = u.invoice_id
		WHERE u.promotion_id = $1
		  AND (u.used_at, u.id) < ($2, $3)
		ORDER BY u.used_at DESC, u.id DESC
		LIMIT $4`,
		pgconv.UUIDToPgtype(promotionID),
		pgconv.TimeToPgtype(lastUsedAt),
		pgconv.UUIDToPgtype(lastID),
		limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list promotion usages", err)
	}
	defer rows.Close()
	return collectUsageRows(rows)
}

func collectUsageRows(rows pgx.Rows) ([]*queries.UsageListItem, error) {
	var items []*queries.UsageListItem
	for rows.Next() {
		var (
			id, promotionID, invoiceID pgtype.UUID
			invoiceNumber              string
			customerID                 pgtype.UUID
			customerPhone              pgtype.Text
			discountApplied            pgtype.Numeric
			usedAt                     pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &promotionID, &invoiceID, &invoiceNumber,
			&customerID, &customerPhone, &discountApplied, &usedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan usage row", err)
		}
		discount, err := pgconv.DecimalFromNumeric(discountApplied)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert usage discount", err)
		}
		items = append(items, &queries.UsageListItem{
			ID:              uuid.UUID(id.Bytes),
			PromotionID:     uuid.UUID(promotionID.Bytes),
			InvoiceID:       uuid.UUID(invoiceID.Bytes),
			InvoiceNumber:   invoiceNumber,
			CustomerID:      pgconv.UUIDPtrFromPgtype(customerID),
			CustomerPhone:   pgconv.StringPtrFromPgtype(customerPhone),
			DiscountApplied: discount,
			UsedAt:          pgconv.TimeFromPgtype(usedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate usage rows", err)
	}
	return items, nil
}

func scanPromotionView(row pgx.Row) (*queries.PromotionView, error) {
	var (
		id                                 pgtype.UUID
		code                               string
		amountOff, percentOff, maxDiscount pgtype.Numeric
		startsAt, endsAt                   pgtype.Timestamptz
		usageLimit                         pgtype.Int4
		usageCount                         int32
		minOrderAmount                     pgtype.Numeric
		active                             bool
		createdAt, updatedAt               pgtype.Timestamptz
	)
	err := row.Scan(&id, &code, &amountOff, &percentOff, &maxDiscount,
		&startsAt, &endsAt, &usageLimit, &usageCount,
		&minOrderAmount, &active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	amount, err := pgconv.DecimalPtrFromNumeric(amountOff)
	if err != nil {
		return nil, err
	}
	percent, err := pgconv.DecimalPtrFromNumeric(percentOff)
	if err != nil {
		return nil, err
	}
	maxAmount, err := pgconv.DecimalPtrFromNumeric(maxDiscount)
	if err != nil {
		return nil, err
	}
	minOrder, err := pgconv.DecimalFromNumeric(minOrderAmount)
	if err != nil {
		return nil, err
	}

	return &queries.PromotionView{
		ID:                uuid.UUID(id.Bytes),
		Code:              code,
		AmountOff:         amount,
		PercentOff:        percent,
		MaxDiscountAmount: maxAmount,
		StartsAt:          pgconv.TimeFromPgtype(startsAt),
		EndsAt:            pgconv.TimeFromPgtype(endsAt),
		UsageLimit:        pgconv.Int32PtrFromPgtype(usageLimit),
		UsageCount:        usageCount,
		MinOrderAmount:    minOrder,
		Active:            active,
		CreatedAt:         pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:         pgconv.TimeFromPgtype(updatedAt),
	}, nil
}
