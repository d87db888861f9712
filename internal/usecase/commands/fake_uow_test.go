//go:build unit

package commands_test

import (
	"context"
	"time"

	"promo-service/internal/domain/promotion"
	"promo-service/internal/infra"
	"promo-service/internal/infra/db"
	"promo-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeUoW is an in-memory UnitOfWork. It runs the transaction function
// directly and keeps state in maps, with hooks to force the failure
// modes a real database would produce under concurrency.
type fakeUoW struct {
	promos   map[uuid.UUID]*shared.PromotionSnapshot
	invoices map[uuid.UUID]*shared.InvoiceSnapshot
	usages   []*shared.UsageRecord

	forceIncrementZero bool
	usageCreateErr     error
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		promos:   make(map[uuid.UUID]*shared.PromotionSnapshot),
		invoices: make(map[uuid.UUID]*shared.InvoiceSnapshot),
	}
}

func (f *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, f)
}

func (f *fakeUoW) CommandReads() shared.CommandReads { return f }

func (f *fakeUoW) Promotions() shared.PromotionRepository { return f }
func (f *fakeUoW) Usages() shared.UsageRepository         { return (*fakeUsageRepo)(f) }
func (f *fakeUoW) Invoices() shared.InvoiceRepository     { return (*fakeInvoiceRepo)(f) }
func (f *fakeUoW) Reads() shared.CommandReads             { return f }
func (f *fakeUoW) DB() db.DBTX                            { return nil }

func (f *fakeUoW) PromotionByID(_ context.Context, id uuid.UUID) (*shared.PromotionSnapshot, error) {
	snap, ok := f.promos[id]
	if !ok {
		return nil, infra.WrapRepoErr("promotion not found", nil, infra.KindNotFound)
	}
	cp := *snap
	return &cp, nil
}

func (f *fakeUoW) PromotionByCode(_ context.Context, code string) (*shared.PromotionSnapshot, error) {
	for _, snap := range f.promos {
		if snap.Code == code {
			cp := *snap
			return &cp, nil
		}
	}
	return nil, infra.WrapRepoErr("promotion not found", nil, infra.KindNotFound)
}

func (f *fakeUoW) InvoiceForUpdate(_ context.Context, id uuid.UUID) (*shared.InvoiceSnapshot, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, infra.WrapRepoErr("invoice not found", nil, infra.KindNotFound)
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeUoW) HasCustomerUsage(_ context.Context, promotionID uuid.UUID, customerID *uuid.UUID, customerPhone *string) (bool, error) {
	for _, u := range f.usages {
		if u.PromotionID != promotionID {
			continue
		}
		if customerID != nil && u.CustomerID != nil && *u.CustomerID == *customerID {
			return true, nil
		}
		if customerPhone != nil && u.CustomerPhone != nil && *u.CustomerPhone == *customerPhone {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUoW) HasAnyUsage(_ context.Context, promotionID uuid.UUID) (bool, error) {
	for _, u := range f.usages {
		if u.PromotionID == promotionID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUoW) Create(_ context.Context, _ db.DBTX, p *promotion.Promotion) (uuid.UUID, error) {
	for _, snap := range f.promos {
		if snap.Code == p.Code().String() {
			return uuid.Nil, infra.WrapRepoErr("duplicate code", nil, infra.KindDuplicateKey)
		}
	}
	f.promos[p.ID()] = snapshotFromDomain(p)
	return p.ID(), nil
}

func (f *fakeUoW) Update(_ context.Context, _ db.DBTX, p *promotion.Promotion) error {
	if _, ok := f.promos[p.ID()]; !ok {
		return infra.WrapRepoErr("promotion not found", nil, infra.KindNotFound)
	}
	f.promos[p.ID()] = snapshotFromDomain(p)
	return nil
}

func (f *fakeUoW) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if _, ok := f.promos[id]; !ok {
		return infra.WrapRepoErr("promotion not found", nil, infra.KindNotFound)
	}
	delete(f.promos, id)
	return nil
}

func (f *fakeUoW) Deactivate(_ context.Context, _ db.DBTX, id uuid.UUID, now time.Time) error {
	snap, ok := f.promos[id]
	if !ok {
		return infra.WrapRepoErr("promotion not found", nil, infra.KindNotFound)
	}
	snap.Active = false
	snap.UpdatedAt = now
	return nil
}

func (f *fakeUoW) IncrementUsage(_ context.Context, _ db.DBTX, id uuid.UUID, now time.Time) (int64, error) {
	if f.forceIncrementZero {
		return 0, nil
	}
	snap, ok := f.promos[id]
	if !ok || !snap.Active {
		return 0, nil
	}
	if snap.UsageLimit != nil && snap.UsageCount >= *snap.UsageLimit {
		return 0, nil
	}
	snap.UsageCount++
	snap.UpdatedAt = now
	return 1, nil
}

type fakeUsageRepo fakeUoW

func (f *fakeUsageRepo) Create(_ context.Context, _ db.DBTX, rec *shared.UsageRecord) (uuid.UUID, error) {
	if f.usageCreateErr != nil {
		return uuid.Nil, f.usageCreateErr
	}
	cp := *rec
	f.usages = append(f.usages, &cp)
	return rec.ID, nil
}

type fakeInvoiceRepo fakeUoW

func (f *fakeInvoiceRepo) Create(_ context.Context, _ db.DBTX, inv *shared.NewInvoice) (uuid.UUID, error) {
	for _, existing := range f.invoices {
		if existing.Number == inv.Number {
			return uuid.Nil, infra.WrapRepoErr("duplicate number", nil, infra.KindDuplicateKey)
		}
	}
	f.invoices[inv.ID] = &shared.InvoiceSnapshot{
		ID:            inv.ID,
		Number:        inv.Number,
		Subtotal:      inv.Subtotal,
		CustomerID:    inv.CustomerID,
		CustomerPhone: inv.CustomerPhone,
	}
	return inv.ID, nil
}

func (f *fakeInvoiceRepo) ApplyPromotion(_ context.Context, _ db.DBTX, invoiceID, promotionID uuid.UUID, _, _ decimal.Decimal, _ time.Time) error {
	inv, ok := f.invoices[invoiceID]
	if !ok {
		return infra.WrapRepoErr("invoice not found", nil, infra.KindNotFound)
	}
	inv.PromotionID = &promotionID
	return nil
}

func snapshotFromDomain(p *promotion.Promotion) *shared.PromotionSnapshot {
	d := p.Discount()
	return &shared.PromotionSnapshot{
		ID:                p.ID(),
		Code:              p.Code().String(),
		AmountOff:         d.AmountOff(),
		PercentOff:        d.PercentOff(),
		MaxDiscountAmount: d.MaxAmount(),
		StartsAt:          p.StartsAt(),
		EndsAt:            p.EndsAt(),
		UsageLimit:        p.UsageLimit(),
		UsageCount:        p.UsageCount(),
		MinOrderAmount:    p.MinOrderAmount(),
		Active:            p.IsActive(),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
	}
}
