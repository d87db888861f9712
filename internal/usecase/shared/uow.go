package shared

import (
	"context"
	"time"

	"promo-service/internal/domain/promotion"
	"promo-service/internal/infra/db"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Promotions() PromotionRepository
	Usages() UsageRepository
	Invoices() InvoiceRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	PromotionByID(ctx context.Context, id uuid.UUID) (*PromotionSnapshot, error)
	PromotionByCode(ctx context.Context, code string) (*PromotionSnapshot, error)
	// InvoiceForUpdate locks the invoice row for the rest of the transaction;
	// only meaningful when reached through Tx.Reads().
	InvoiceForUpdate(ctx context.Context, id uuid.UUID) (*InvoiceSnapshot, error)
	HasCustomerUsage(ctx context.Context, promotionID uuid.UUID, customerID *uuid.UUID, customerPhone *string) (bool, error)
	HasAnyUsage(ctx context.Context, promotionID uuid.UUID) (bool, error)
}

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type PromotionSnapshot struct {
	ID                uuid.UUID
	Code              string
	AmountOff         *decimal.Decimal
	PercentOff        *decimal.Decimal
	MaxDiscountAmount *decimal.Decimal
	StartsAt          time.Time
	EndsAt            time.Time
	UsageLimit        *int32
	UsageCount        int32
	MinOrderAmount    decimal.Decimal
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type InvoiceSnapshot struct {
	ID            uuid.UUID
	Number        string
	Subtotal      decimal.Decimal
	CustomerID    *uuid.UUID
	CustomerPhone *string
	PromotionID   *uuid.UUID
}

// UsageRecord is the append-only ledger entry written on a successful
// application. It is never mutated or deleted.
type UsageRecord struct {
	ID              uuid.UUID
	PromotionID     uuid.UUID
	InvoiceID       uuid.UUID
	CustomerID      *uuid.UUID
	CustomerPhone   *string
	DiscountApplied decimal.Decimal
	UsedAt          time.Time
}

type NewInvoice struct {
	ID            uuid.UUID
	Number        string
	Subtotal      decimal.Decimal
	CustomerID    *uuid.UUID
	CustomerPhone *string
	CreatedAt     time.Time
}

type PromotionRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *promotion.Promotion) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, p *promotion.Promotion) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	Deactivate(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) error
	// IncrementUsage bumps usage_count only while it is still under the
	// limit and returns the number of affected rows. A zero result means
	// the promotion was exhausted (or deactivated) by a concurrent apply.
	IncrementUsage(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) (int64, error)
}

type UsageRepository interface {
	Create(ctx context.Context, tx db.DBTX, rec *UsageRecord) (uuid.UUID, error)
}

type InvoiceRepository interface {
	Create(ctx context.Context, tx db.DBTX, inv *NewInvoice) (uuid.UUID, error)
	ApplyPromotion(ctx context.Context, tx db.DBTX, invoiceID, promotionID uuid.UUID, discount, finalAmount decimal.Decimal, now time.Time) error
}
