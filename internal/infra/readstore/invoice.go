package readstore

import (
	"context"

	"promo-service/internal/infra"
	"promo-service/internal/infra/db"
	"promo-service/internal/pkg/pgconv"
	"promo-service/internal/usecase/queries"
	"promo-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type InvoiceReadStore struct {
	db db.DBTX
}

func NewInvoiceReadStore(dbtx db.DBTX) *InvoiceReadStore {
	return &InvoiceReadStore{db: dbtx}
}

const findInvoiceSQL = `
SELECT i.id, i.number, i.subtotal, i.customer_id, i.customer_phone,
	i.promotion_id, p.code, i.discount_amount, i.final_amount,
	i.created_at, i.updated_at
FROM invoices i
LEFT JOIN promotions p ON p.id = i.promotion_id
WHERE i.id = $1`

func (r *InvoiceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.InvoiceView, error) {
	var (
		invID                pgtype.UUID
		number               string
		subtotal             pgtype.Numeric
		customerID           pgtype.UUID
		customerPhone        pgtype.Text
		promotionID          pgtype.UUID
		promotionCode        pgtype.Text
		discountAmount       pgtype.Numeric
		finalAmount          pgtype.Numeric
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findInvoiceSQL, pgconv.UUIDToPgtype(id)).Scan(
		&invID, &number, &subtotal, &customerID, &customerPhone,
		&promotionID, &promotionCode, &discountAmount, &finalAmount,
		&createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("invoice not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find invoice by id", err)
	}

	sub, err := pgconv.DecimalFromNumeric(subtotal)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert invoice subtotal", err)
	}
	discount, err := pgconv.DecimalFromNumeric(discountAmount)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert invoice discount", err)
	}
	final, err := pgconv.DecimalFromNumeric(finalAmount)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert invoice final amount", err)
	}

	return &queries.InvoiceView{
		ID:             uuid.UUID(invID.Bytes),
		Number:         number,
		Subtotal:       sub,
		CustomerID:     pgconv.UUIDPtrFromPgtype(customerID),
		CustomerPhone:  pgconv.StringPtrFromPgtype(customerPhone),
		PromotionID:    pgconv.UUIDPtrFromPgtype(promotionID),
		PromotionCode:  pgconv.StringPtrFromPgtype(promotionCode),
		DiscountAmount: discount,
		FinalAmount:    final,
		CreatedAt:      pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:      pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

const lockInvoiceSQL = `
SELECT id, number, subtotal, customer_id, customer_phone, promotion_id
FROM invoices
WHERE id = $1
FOR UPDATE`

// FindForUpdate locks the invoice row for the remainder of the enclosing
// transaction; callers outside a transaction get no lasting lock.
func (r *InvoiceReadStore) FindForUpdate(ctx context.Context, id uuid.UUID) (*shared.InvoiceSnapshot, error) {
	var (
		invID         pgtype.UUID
		number        string
		subtotal      pgtype.Numeric
		customerID    pgtype.UUID
		customerPhone pgtype.Text
		promotionID   pgtype.UUID
	)
	err := r.db.QueryRow(ctx, lockInvoiceSQL, pgconv.UUIDToPgtype(id)).Scan(
		&invID, &number, &subtotal, &customerID, &customerPhone, &promotionID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("invoice not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock invoice", err)
	}

	sub, err := pgconv.DecimalFromNumeric(subtotal)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert invoice subtotal", err)
	}

	return &shared.InvoiceSnapshot{
		ID:            uuid.UUID(invID.Bytes),
		Number:        number,
		Subtotal:      sub,
		CustomerID:    pgconv.UUIDPtrFromPgtype(customerID),
		CustomerPhone: pgconv.StringPtrFromPgtype(customerPhone),
		PromotionID:   pgconv.UUIDPtrFromPgtype(promotionID),
	}, nil
}
