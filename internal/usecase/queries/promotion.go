package queries

import (
	"context"
	"time"

	"promo-service/internal/domain/promotion"
	"promo-service/internal/infra"
	"promo-service/internal/pkg/clock"
	"promo-service/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCursor = errs.New("invalid cursor")
)

type PromotionFilters struct {
	ActiveOnly bool
	// UsableOnly additionally requires the date-window and usage-limit
	// checks to pass at query time.
	UsableOnly bool
}

type ValidateInput struct {
	Code          string
	OrderAmount   decimal.Decimal
	CustomerID    *uuid.UUID
	CustomerPhone *string
}

// ValidationResult is the verdict surfaced to callers. Promotion is set
// on every path where the promotion was found so the UI can display its
// details alongside a failure message.
type ValidationResult struct {
	Valid          bool             `json:"valid"`
	Reason         promotion.Reason `json:"reason,omitempty"`
	Message        string           `json:"message"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	FinalAmount    decimal.Decimal  `json:"final_amount"`
	Promotion      *PromotionView   `json:"promotion,omitempty"`
}

type PromotionReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PromotionView, error)
	FindByCode(ctx context.Context, code string) (*PromotionView, error)
	List(ctx context.Context, activeOnly bool, usableAt *time.Time) ([]*PromotionView, error)
	HasCustomerUsage(ctx context.Context, promotionID uuid.UUID, customerID *uuid.UUID, customerPhone *string) (bool, error)
	FindUsagesFirstPage(ctx context.Context, promotionID uuid.UUID, limit int32) ([]*UsageListItem, error)
	FindUsagesKeyset(ctx context.Context, promotionID uuid.UUID, lastUsedAt time.Time, lastID uuid.UUID, limit int32) ([]*UsageListItem, error)
}

type PromotionQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PromotionView, error)
	GetByCode(ctx context.Context, code string) (*PromotionView, error)
	List(ctx context.Context, filters PromotionFilters) ([]*PromotionView, error)
	Validate(ctx context.Context, input ValidateInput) (*ValidationResult, error)
	ListUsages(ctx context.Context, promotionID uuid.UUID, cursor *Cursor, limit int) ([]*UsageListItem, *Cursor, error)
}

type promotionQueriesImpl struct {
	repo  PromotionReadStore
	clock clock.Clock
}

func NewPromotionQueries(repo PromotionReadStore, clk clock.Clock) PromotionQueries {
	return &promotionQueriesImpl{repo: repo, clock: clk}
}

func (q *promotionQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*PromotionView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrPromotionNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *promotionQueriesImpl) GetByCode(ctx context.Context, code string) (*PromotionView, error) {
	normalized, err := promotion.NewCode(code)
	if err != nil {
		return nil, errs.ErrPromotionNotFound
	}
	view, err := q.repo.FindByCode(ctx, normalized.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrPromotionNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *promotionQueriesImpl) List(ctx context.Context, filters PromotionFilters) ([]*PromotionView, error) {
	var usableAt *time.Time
	if filters.UsableOnly {
		now := q.clock.Now()
		usableAt = &now
	}
	return q.repo.List(ctx, filters.ActiveOnly || filters.UsableOnly, usableAt)
}

// Validate runs the full check sequence without mutating any state.
// Calling it twice against unchanged state yields identical results.
func (q *promotionQueriesImpl) Validate(ctx context.Context, input ValidateInput) (*ValidationResult, error) {
	if !input.OrderAmount.IsPositive() {
		return nil, errs.ErrInvalidOrderAmount
	}

	notFound := &ValidationResult{
		Valid:   false,
		Reason:  promotion.ReasonNotFound,
		Message: "promotion not found",
	}

	code, err := promotion.NewCode(input.Code)
	if err != nil {
		// A code that can't exist is indistinguishable from one that doesn't.
		return notFound, nil
	}

	view, err := q.repo.FindByCode(ctx, code.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return notFound, nil
		}
		return nil, err
	}

	alreadyUsed := false
	if input.CustomerID != nil || input.CustomerPhone != nil {
		alreadyUsed, err = q.repo.HasCustomerUsage(ctx, view.ID, input.CustomerID, input.CustomerPhone)
		if err != nil {
			return nil, err
		}
	}

	promo, err := DomainFromView(view)
	if err != nil {
		return nil, err
	}

	verdict := promo.Validate(q.clock.Now(), input.OrderAmount, alreadyUsed)
	return resultFromVerdict(verdict, view), nil
}

func (q *promotionQueriesImpl) ListUsages(ctx context.Context, promotionID uuid.UUID, cursor *Cursor, limit int) ([]*UsageListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*UsageListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindUsagesFirstPage(ctx, promotionID, int32(limit+1))
	} else {
		lastUsedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindUsagesKeyset(ctx, promotionID, lastUsedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.UsedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func resultFromVerdict(v promotion.Verdict, view *PromotionView) *ValidationResult {
	return &ValidationResult{
		Valid:          v.Valid,
		Reason:         v.Reason,
		Message:        v.Message,
		DiscountAmount: v.DiscountAmount,
		FinalAmount:    v.FinalAmount,
		Promotion:      view,
	}
}

// DomainFromView rebuilds the aggregate from a read model so the rule
// sequence lives in one place regardless of which side loaded the row.
func DomainFromView(v *PromotionView) (*promotion.Promotion, error) {
	discount, err := promotion.NewDiscount(v.AmountOff, v.PercentOff, v.MaxDiscountAmount)
	if err != nil {
		return nil, errs.Wrap(err, "stored promotion has an inconsistent discount")
	}
	code, err := promotion.NewCode(v.Code)
	if err != nil {
		return nil, errs.Wrap(err, "stored promotion has an invalid code")
	}
	return promotion.Reconstruct(
		v.ID, code, discount,
		v.StartsAt, v.EndsAt,
		v.UsageLimit, v.UsageCount,
		v.MinOrderAmount, v.Active,
		v.CreatedAt, v.UpdatedAt,
	), nil
}
