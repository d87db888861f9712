package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"promo-service/internal/infra/db"
	"promo-service/internal/infra/readstore"
	"promo-service/internal/infra/repository"
	"promo-service/internal/pkg/errs"
	"promo-service/internal/usecase/queries"
	"promo-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	promotionRepo shared.PromotionRepository
	usageRepo     shared.UsageRepository
	invoiceRepo   shared.InvoiceRepository
	commandReads  shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Promotions() shared.PromotionRepository {
	if t.promotionRepo == nil {
		t.promotionRepo = repository.NewPromotionRepository()
	}
	return t.promotionRepo
}

func (t *pgTx) Usages() shared.UsageRepository {
	if t.usageRepo == nil {
		t.usageRepo = repository.NewUsageRepository()
	}
	return t.usageRepo
}

func (t *pgTx) Invoices() shared.InvoiceRepository {
	if t.invoiceRepo == nil {
		t.invoiceRepo = repository.NewInvoiceRepository()
	}
	return t.invoiceRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	promotionStore *readstore.PromotionReadStore
	invoiceStore   *readstore.InvoiceReadStore
}

func (r *commandReads) promotions() *readstore.PromotionReadStore {
	if r.promotionStore == nil {
		r.promotionStore = readstore.NewPromotionReadStore(r.dbtx)
	}
	return r.promotionStore
}

func (r *commandReads) invoices() *readstore.InvoiceReadStore {
	if r.invoiceStore == nil {
		r.invoiceStore = readstore.NewInvoiceReadStore(r.dbtx)
	}
	return r.invoiceStore
}

func (r *commandReads) PromotionByID(ctx context.Context, id uuid.UUID) (*shared.PromotionSnapshot, error) {
	view, err := r.promotions().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPromotionSnapshot(view), nil
}

func (r *commandReads) PromotionByCode(ctx context.Context, code string) (*shared.PromotionSnapshot, error) {
	view, err := r.promotions().FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return toPromotionSnapshot(view), nil
}

func (r *commandReads) InvoiceForUpdate(ctx context.Context, id uuid.UUID) (*shared.InvoiceSnapshot, error) {
	return r.invoices().FindForUpdate(ctx, id)
}

func (r *commandReads) HasCustomerUsage(ctx context.Context, promotionID uuid.UUID, customerID *uuid.UUID, customerPhone *string) (bool, error) {
	return r.promotions().HasCustomerUsage(ctx, promotionID, customerID, customerPhone)
}

func (r *commandReads) HasAnyUsage(ctx context.Context, promotionID uuid.UUID) (bool, error) {
	return r.promotions().HasAnyUsage(ctx, promotionID)
}

func toPromotionSnapshot(v *queries.PromotionView) *shared.PromotionSnapshot {
	return &shared.PromotionSnapshot{
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
