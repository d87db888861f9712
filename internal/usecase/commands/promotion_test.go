//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"promo-service/internal/domain/promotion"
	"promo-service/internal/infra"
	"promo-service/internal/pkg/clock"
	"promo-service/internal/pkg/errs"
	"promo-service/internal/usecase/commands"
	"promo-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func int32Ptr(v int32) *int32 {
	return &v
}

func strPtr(s string) *string {
	return &s
}

func validCreateRequest() commands.CreatePromotionRequest {
	return commands.CreatePromotionRequest{
		Code:           "SALE10",
		PercentOff:     decPtr("10"),
		StartsAt:       testNow.Add(-24 * time.Hour),
		EndsAt:         testNow.Add(24 * time.Hour),
		MinOrderAmount: decimal.Zero,
		Active:         true,
	}
}

func seedPromotion(t *testing.T, uow *fakeUoW, cmds commands.PromotionCommands, req commands.CreatePromotionRequest) uuid.UUID {
	t.Helper()
	id, err := cmds.Create(context.Background(), req)
	require.NoError(t, err)
	return id
}

func seedInvoice(uow *fakeUoW, subtotal string, customerID *uuid.UUID, customerPhone *string) uuid.UUID {
	id := uuid.New()
	uow.invoices[id] = &shared.InvoiceSnapshot{
		ID:            id,
		Number:        "INV-" + id.String()[:8],
		Subtotal:      dec(subtotal),
		CustomerID:    customerID,
		CustomerPhone: customerPhone,
	}
	return id
}

func TestPromotionCommands_Create(t *testing.T) {
	t.Run("creates and normalizes the code", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))

		req := validCreateRequest()
		req.Code = "sale10"
		id, err := cmds.Create(context.Background(), req)

		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, id)
		assert.Equal(t, "SALE10", uow.promos[id].Code)
		assert.Equal(t, int32(0), uow.promos[id].UsageCount)
	})

	t.Run("duplicate code", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))

		seedPromotion(t, uow, cmds, validCreateRequest())
		_, err := cmds.Create(context.Background(), validCreateRequest())

		assert.ErrorIs(t, err, errs.ErrDuplicateCode)
	})

	t.Run("both discount kinds rejected", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))

		req := validCreateRequest()
		req.AmountOff = decPtr("5000")
		_, err := cmds.Create(context.Background(), req)

		assert.ErrorIs(t, err, errs.ErrInvalidDiscountSpec)
	})

	t.Run("end date not after start date", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))

		req := validCreateRequest()
		req.EndsAt = req.StartsAt
		_, err := cmds.Create(context.Background(), req)

		assert.ErrorIs(t, err, promotion.ErrEndNotAfterStart)
	})
}

func TestPromotionCommands_Update(t *testing.T) {
	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		uow := newFakeUoW()
		clk := clock.NewMockClock(testNow)
		cmds := commands.NewPromotionCommands(uow, clk)
		id := seedPromotion(t, uow, cmds, validCreateRequest())

		clk.Add(time.Hour)
		err := cmds.Update(context.Background(), id, commands.UpdatePromotionRequest{
			MinOrderAmount: decPtr("100000"),
		})

		require.NoError(t, err)
		snap := uow.promos[id]
		assert.True(t, snap.MinOrderAmount.Equal(dec("100000")))
		assert.Equal(t, "SALE10", snap.Code)
		assert.NotNil(t, snap.PercentOff)
		assert.Equal(t, testNow, snap.CreatedAt)
		assert.Equal(t, testNow.Add(time.Hour), snap.UpdatedAt)
	})

	t.Run("not found", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))

		err := cmds.Update(context.Background(), uuid.New(), commands.UpdatePromotionRequest{
			Active: func(b bool) *bool { return &b }(false),
		})

		assert.ErrorIs(t, err, errs.ErrPromotionNotFound)
	})

	t.Run("switching a percentage promotion to fixed", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))
		id := seedPromotion(t, uow, cmds, validCreateRequest())

		err := cmds.Update(context.Background(), id, commands.UpdatePromotionRequest{
			AmountOff: decPtr("5000"),
		})

		require.NoError(t, err)
		snap := uow.promos[id]
		assert.Nil(t, snap.PercentOff)
		require.NotNil(t, snap.AmountOff)
		assert.True(t, snap.AmountOff.Equal(dec("5000")))
	})

	t.Run("resending the percentage without a cap clears the cap", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))
		req := validCreateRequest()
		req.MaxDiscountAmount = decPtr("50000")
		id := seedPromotion(t, uow, cmds, req)

		err := cmds.Update(context.Background(), id, commands.UpdatePromotionRequest{
			PercentOff: decPtr("10"),
		})

		require.NoError(t, err)
		assert.Nil(t, uow.promos[id].MaxDiscountAmount)
	})

	t.Run("cap-only update keeps the percentage", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))
		req := validCreateRequest()
		req.MaxDiscountAmount = decPtr("50000")
		id := seedPromotion(t, uow, cmds, req)

		err := cmds.Update(context.Background(), id, commands.UpdatePromotionRequest{
			MaxDiscountAmount: decPtr("30000"),
		})

		require.NoError(t, err)
		snap := uow.promos[id]
		require.NotNil(t, snap.PercentOff)
		require.NotNil(t, snap.MaxDiscountAmount)
		assert.True(t, snap.MaxDiscountAmount.Equal(dec("30000")))
	})

	t.Run("cap on a fixed promotion rejected", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))
		req := validCreateRequest()
		req.PercentOff = nil
		req.AmountOff = decPtr("5000")
		id := seedPromotion(t, uow, cmds, req)

		err := cmds.Update(context.Background(), id, commands.UpdatePromotionRequest{
			MaxDiscountAmount: decPtr("1000"),
		})

		assert.ErrorIs(t, err, errs.ErrInvalidDiscountSpec)
	})

	t.Run("date change must keep ordering", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))
		id := seedPromotion(t, uow, cmds, validCreateRequest())

		badStart := testNow.Add(48 * time.Hour)
		err := cmds.Update(context.Background(), id, commands.UpdatePromotionRequest{
			StartsAt: &badStart,
		})

		assert.ErrorIs(t, err, errs.ErrInvalidValidityWindow)
	})

	t.Run("usage limit below one rejected", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))
		id := seedPromotion(t, uow, cmds, validCreateRequest())

		err := cmds.Update(context.Background(), id, commands.UpdatePromotionRequest{
			UsageLimit: int32Ptr(0),
		})

		assert.ErrorIs(t, err, errs.ErrInvalidUsageLimit)
	})
}

func TestPromotionCommands_Delete(t *testing.T) {
	t.Run("hard delete without usage history", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))
		id := seedPromotion(t, uow, cmds, validCreateRequest())

		result, err := cmds.Delete(context.Background(), id)

		require.NoError(t, err)
		assert.False(t, result.SoftDeleted)
		assert.NotContains(t, uow.promos, id)
	})

	t.Run("deactivates instead when usage exists", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))
		id := seedPromotion(t, uow, cmds, validCreateRequest())
		uow.usages = append(uow.usages, &shared.UsageRecord{
			ID: uuid.New(), PromotionID: id, InvoiceID: uuid.New(),
			DiscountApplied: dec("1000"), UsedAt: testNow,
		})

		result, err := cmds.Delete(context.Background(), id)

		require.NoError(t, err)
		assert.True(t, result.SoftDeleted)
		require.Contains(t, uow.promos, id)
		assert.False(t, uow.promos[id].Active)
	})

	t.Run("not found", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))

		_, err := cmds.Delete(context.Background(), uuid.New())

		assert.ErrorIs(t, err, errs.ErrPromotionNotFound)
	})
}

func TestPromotionCommands_Apply(t *testing.T) {
	t.Run("applies and records usage atomically", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))
		req := validCreateRequest()
		req.MaxDiscountAmount = decPtr("50000")
		req.MinOrderAmount = dec("100000")
		promoID := seedPromotion(t, uow, cmds, req)
		customerID := uuid.New()
		invID := seedInvoice(uow, "1000000", &customerID, nil)

		result, err := cmds.Apply(context.Background(), invID, "sale10")

		require.NoError(t, err)
		require.True(t, result.Valid)
		assert.Equal(t, "promotion applied", result.Message)
		assert.True(t, result.DiscountAmount.Equal(dec("50000")))
		assert.True(t, result.FinalAmount.Equal(dec("950000")))
		assert.Equal(t, int32(1), result.Promotion.UsageCount)

		assert.Equal(t, int32(1), uow.promos[promoID].UsageCount)
		require.Len(t, uow.usages, 1)
		assert.Equal(t, promoID, uow.usages[0].PromotionID)
		assert.Equal(t, invID, uow.usages[0].InvoiceID)
		require.NotNil(t, uow.invoices[invID].PromotionID)
		assert.Equal(t, promoID, *uow.invoices[invID].PromotionID)
	})

	t.Run("invoice not found", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))

		_, err := cmds.Apply(context.Background(), uuid.New(), "SALE10")

		assert.ErrorIs(t, err, errs.ErrInvoiceNotFound)
	})

	t.Run("invoice already has a promotion", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))
		seedPromotion(t, uow, cmds, validCreateRequest())
		invID := seedInvoice(uow, "1000000", nil, nil)
		existing := uuid.New()
		uow.invoices[invID].PromotionID = &existing

		_, err := cmds.Apply(context.Background(), invID, "SALE10")

		assert.ErrorIs(t, err, errs.ErrPromotionAlreadyApplied)
	})

	t.Run("unknown code is a verdict not an error", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))
		invID := seedInvoice(uow, "1000000", nil, nil)

		result, err := cmds.Apply(context.Background(), invID, "NOSUCH")

		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, promotion.ReasonNotFound, result.Reason)
		assert.Empty(t, uow.usages)
	})

	t.Run("failed validation writes nothing", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))
		req := validCreateRequest()
		req.EndsAt = testNow.Add(-time.Hour)
		req.StartsAt = testNow.Add(-48 * time.Hour)
		promoID := seedPromotion(t, uow, cmds, req)
		invID := seedInvoice(uow, "1000000", nil, nil)

		result, err := cmds.Apply(context.Background(), invID, "SALE10")

		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, promotion.ReasonExpired, result.Reason)
		assert.Equal(t, int32(0), uow.promos[promoID].UsageCount)
		assert.Empty(t, uow.usages)
		assert.Nil(t, uow.invoices[invID].PromotionID)
	})

	t.Run("same customer phone cannot use a code twice", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))
		promoID := seedPromotion(t, uow, cmds, validCreateRequest())
		phone := strPtr("0901234567")
		firstInv := seedInvoice(uow, "500000", nil, phone)
		secondInv := seedInvoice(uow, "500000", nil, phone)

		first, err := cmds.Apply(context.Background(), firstInv, "SALE10")
		require.NoError(t, err)
		require.True(t, first.Valid)

		second, err := cmds.Apply(context.Background(), secondInv, "SALE10")
		require.NoError(t, err)
		assert.False(t, second.Valid)
		assert.Equal(t, promotion.ReasonAlreadyUsed, second.Reason)
		assert.Equal(t, int32(1), uow.promos[promoID].UsageCount)
	})

	t.Run("concurrent apply losing the last slot", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))
		seedPromotion(t, uow, cmds, validCreateRequest())
		invID := seedInvoice(uow, "1000000", nil, nil)
		uow.forceIncrementZero = true

		result, err := cmds.Apply(context.Background(), invID, "SALE10")

		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, promotion.ReasonUsageExhausted, result.Reason)
		assert.Empty(t, uow.usages)
	})

	t.Run("duplicate use race caught by the unique index", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))
		seedPromotion(t, uow, cmds, validCreateRequest())
		customerID := uuid.New()
		invID := seedInvoice(uow, "1000000", &customerID, nil)
		uow.usageCreateErr = infra.WrapRepoErr("duplicate usage", nil, infra.KindDuplicateKey)

		result, err := cmds.Apply(context.Background(), invID, "SALE10")

		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, promotion.ReasonAlreadyUsed, result.Reason)
	})

	t.Run("exactly N applies succeed with usage limit N", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := commands.NewPromotionCommands(uow, clock.NewMockClock(testNow))
		req := validCreateRequest()
		req.UsageLimit = int32Ptr(3)
		promoID := seedPromotion(t, uow, cmds, req)

		succeeded := 0
		for i := 0; i < 5; i++ {
			invID := seedInvoice(uow, "100000", nil, nil)
			result, err := cmds.Apply(context.Background(), invID, "SALE10")
			require.NoError(t, err)
			if result.Valid {
				succeeded++
			} else {
				assert.Equal(t, promotion.ReasonUsageExhausted, result.Reason)
			}
		}

		assert.Equal(t, 3, succeeded)
		assert.Equal(t, int32(3), uow.promos[promoID].UsageCount)
		assert.Len(t, uow.usages, 3)
	})
}
