package commands

import (
	"context"
	"errors"
	"time"

	"promo-service/internal/domain/promotion"
	"promo-service/internal/infra"
	"promo-service/internal/pkg/clock"
	"promo-service/internal/pkg/errs"
	"promo-service/internal/pkg/patch"
	"promo-service/internal/usecase/queries"
	"promo-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// raced sentinels: the unique usage indexes and the conditional counter
// update turn concurrent duplicate applies into these, which surface as
// verdicts instead of errors.
var (
	errDuplicateUseRace = errs.New("concurrent duplicate use detected")
)

type CreatePromotionRequest struct {
	Code              string
	AmountOff         *decimal.Decimal
	PercentOff        *decimal.Decimal
	MaxDiscountAmount *decimal.Decimal
	StartsAt          time.Time
	EndsAt            time.Time
	UsageLimit        *int32
	MinOrderAmount    decimal.Decimal
	Active            bool
}

// UpdatePromotionRequest carries only the fields being changed; nil means
// "leave as is".
type UpdatePromotionRequest struct {
	AmountOff         *decimal.Decimal
	PercentOff        *decimal.Decimal
	MaxDiscountAmount *decimal.Decimal
	StartsAt          *time.Time
	EndsAt            *time.Time
	UsageLimit        *int32
	MinOrderAmount    *decimal.Decimal
	Active            *bool
}

type DeletePromotionResult struct {
	// SoftDeleted is true when usage history forced a deactivation
	// instead of a hard delete.
	SoftDeleted bool
}

type PromotionCommands interface {
	Create(ctx context.Context, req CreatePromotionRequest) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req UpdatePromotionRequest) error
	Delete(ctx context.Context, id uuid.UUID) (*DeletePromotionResult, error)
	Apply(ctx context.Context, invoiceID uuid.UUID, code string) (*queries.ValidationResult, error)
}

type promotionUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewPromotionCommands(uow shared.UnitOfWork, clk clock.Clock) PromotionCommands {
	return &promotionUseCaseImpl{uow: uow, clock: clk}
}

func (uc *promotionUseCaseImpl) Create(ctx context.Context, req CreatePromotionRequest) (uuid.UUID, error) {
	discount, err := promotion.NewDiscount(req.AmountOff, req.PercentOff, req.MaxDiscountAmount)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrInvalidDiscountSpec)
	}

	promo, err := promotion.NewPromotion(
		uuid.Nil, req.Code, discount,
		req.StartsAt, req.EndsAt,
		req.UsageLimit, req.MinOrderAmount, req.Active,
		uc.clock.Now(),
	)
	if err != nil {
		return uuid.Nil, err
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Promotions().Create(ctx, tx.DB(), promo)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return errs.ErrDuplicateCode
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

func (uc *promotionUseCaseImpl) Update(ctx context.Context, id uuid.UUID, req UpdatePromotionRequest) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().PromotionByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrPromotionNotFound
			}
			return err
		}

		discount, err := mergeDiscount(snap, req)
		if err != nil {
			return err
		}

		// Date ordering is only re-checked when either date is changing.
		startsAt := patch.Coalesce(req.StartsAt, snap.StartsAt)
		endsAt := patch.Coalesce(req.EndsAt, snap.EndsAt)
		if (req.StartsAt != nil || req.EndsAt != nil) && !endsAt.After(startsAt) {
			return errs.ErrInvalidValidityWindow
		}

		usageLimit := snap.UsageLimit
		if req.UsageLimit != nil {
			if *req.UsageLimit < 1 {
				return errs.ErrInvalidUsageLimit
			}
			usageLimit = req.UsageLimit
		}

		minOrderAmount := snap.MinOrderAmount
		if req.MinOrderAmount != nil {
			if req.MinOrderAmount.IsNegative() {
				return errs.ErrInvalidMinOrderAmount
			}
			minOrderAmount = *req.MinOrderAmount
		}

		code, err := promotion.NewCode(snap.Code)
		if err != nil {
			return err
		}

		updated := promotion.Reconstruct(
			snap.ID, code, discount,
			startsAt, endsAt,
			usageLimit, snap.UsageCount,
			minOrderAmount,
			patch.Coalesce(req.Active, snap.Active),
			snap.CreatedAt, uc.clock.Now(),
		)
		return tx.Promotions().Update(ctx, tx.DB(), updated)
	})
}

// mergeDiscount re-validates discount-type exclusivity only when one of
// the discount fields is part of the update. When percent_off is present
// the cap is taken verbatim from the request: omitting max_discount_amount
// alongside percent_off clears the cap, which is the only way to remove it
// under nil-means-unchanged semantics.
func mergeDiscount(snap *shared.PromotionSnapshot, req UpdatePromotionRequest) (promotion.Discount, error) {
	if req.AmountOff == nil && req.PercentOff == nil && req.MaxDiscountAmount == nil {
		return promotion.NewDiscount(snap.AmountOff, snap.PercentOff, snap.MaxDiscountAmount)
	}

	amountOff := req.AmountOff
	percentOff := req.PercentOff
	maxAmount := req.MaxDiscountAmount
	if amountOff == nil && percentOff == nil {
		// only the cap is changing; the promotion must already be percentage-based
		amountOff = snap.AmountOff
		percentOff = snap.PercentOff
	}

	discount, err := promotion.NewDiscount(amountOff, percentOff, maxAmount)
	if err != nil {
		return promotion.Discount{}, errs.Mark(err, errs.ErrInvalidDiscountSpec)
	}
	return discount, nil
}

func (uc *promotionUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) (*DeletePromotionResult, error) {
	result := &DeletePromotionResult{}
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().PromotionByID(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrPromotionNotFound
			}
			return err
		}

		hasUsage, err := tx.Reads().HasAnyUsage(ctx, id)
		if err != nil {
			return err
		}
		// Usage history must stay referentially intact, so a used
		// promotion is only ever deactivated.
		if hasUsage {
			result.SoftDeleted = true
			return tx.Promotions().Deactivate(ctx, tx.DB(), id, uc.clock.Now())
		}
		return tx.Promotions().Delete(ctx, tx.DB(), id)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Apply re-runs the full validation inside the transaction and, on
// success, writes the usage record and bumps the counter atomically.
// Either both commit or neither does.
func (uc *promotionUseCaseImpl) Apply(ctx context.Context, invoiceID uuid.UUID, code string) (*queries.ValidationResult, error) {
	var result *queries.ValidationResult
	var view *queries.PromotionView

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil

		inv, err := tx.Reads().InvoiceForUpdate(ctx, invoiceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrInvoiceNotFound
			}
			return err
		}
		if inv.PromotionID != nil {
			return errs.ErrPromotionAlreadyApplied
		}

		normalized, err := promotion.NewCode(code)
		if err != nil {
			result = notFoundResult()
			return nil
		}
		snap, err := tx.Reads().PromotionByCode(ctx, normalized.String())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				result = notFoundResult()
				return nil
			}
			return err
		}

		view = viewFromSnapshot(snap)
		promo, err := queries.DomainFromView(view)
		if err != nil {
			return err
		}

		alreadyUsed := false
		if inv.CustomerID != nil || inv.CustomerPhone != nil {
			alreadyUsed, err = tx.Reads().HasCustomerUsage(ctx, snap.ID, inv.CustomerID, inv.CustomerPhone)
			if err != nil {
				return err
			}
		}

		now := uc.clock.Now()
		verdict := promo.Validate(now, inv.Subtotal, alreadyUsed)
		if !verdict.Valid {
			result = resultFromVerdict(verdict, view)
			return nil
		}

		affected, err := tx.Promotions().IncrementUsage(ctx, tx.DB(), snap.ID, now)
		if err != nil {
			return err
		}
		if affected == 0 {
			// a concurrent apply consumed the last redemption after our read
			result = &queries.ValidationResult{
				Valid:     false,
				Reason:    promotion.ReasonUsageExhausted,
				Message:   "promotion usage limit has been reached",
				Promotion: view,
			}
			return nil
		}

		rec := &shared.UsageRecord{
			ID:              uuid.New(),
			PromotionID:     snap.ID,
			InvoiceID:       inv.ID,
			CustomerID:      inv.CustomerID,
			CustomerPhone:   inv.CustomerPhone,
			DiscountApplied: verdict.DiscountAmount,
			UsedAt:          now,
		}
		if _, err := tx.Usages().Create(ctx, tx.DB(), rec); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				// the unique (promotion, customer) index caught a race the
				// read-time check missed; roll the increment back with the tx
				return errDuplicateUseRace
			}
			return err
		}

		if err := tx.Invoices().ApplyPromotion(ctx, tx.DB(), inv.ID, snap.ID, verdict.DiscountAmount, verdict.FinalAmount, now); err != nil {
			return err
		}

		applied := *view
		applied.UsageCount++
		applied.UpdatedAt = now
		result = resultFromVerdict(verdict, &applied)
		result.Message = "promotion applied"
		return nil
	})
	if err != nil {
		if errors.Is(err, errDuplicateUseRace) {
			return &queries.ValidationResult{
				Valid:     false,
				Reason:    promotion.ReasonAlreadyUsed,
				Message:   "promotion has already been used by this customer",
				Promotion: view,
			}, nil
		}
		return nil, err
	}
	return result, nil
}

func notFoundResult() *queries.ValidationResult {
	return &queries.ValidationResult{
		Valid:   false,
		Reason:  promotion.ReasonNotFound,
		Message: "promotion not found",
	}
}

func resultFromVerdict(v promotion.Verdict, view *queries.PromotionView) *queries.ValidationResult {
	return &queries.ValidationResult{
		Valid:          v.Valid,
		Reason:         v.Reason,
		Message:        v.Message,
		DiscountAmount: v.DiscountAmount,
		FinalAmount:    v.FinalAmount,
		Promotion:      view,
	}
}

func viewFromSnapshot(s *shared.PromotionSnapshot) *queries.PromotionView {
	return &queries.PromotionView{
		ID:                s.ID,
		Code:              s.Code,
		AmountOff:         s.AmountOff,
		PercentOff:        s.PercentOff,
		MaxDiscountAmount: s.MaxDiscountAmount,
		StartsAt:          s.StartsAt,
		EndsAt:            s.EndsAt,
		UsageLimit:        s.UsageLimit,
		UsageCount:        s.UsageCount,
		MinOrderAmount:    s.MinOrderAmount,
		Active:            s.Active,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
