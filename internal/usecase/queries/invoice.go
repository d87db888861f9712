package queries

import (
	"context"

	"promo-service/internal/infra"
	"promo-service/internal/pkg/errs"

	"github.com/google/uuid"
)

type InvoiceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InvoiceView, error)
}

type InvoiceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*InvoiceView, error)
}

type invoiceQueriesImpl struct {
	repo InvoiceReadStore
}

func NewInvoiceQueries(repo InvoiceReadStore) InvoiceQueries {
	return &invoiceQueriesImpl{repo: repo}
}

func (q *invoiceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrInvoiceNotFound
		}
		return nil, err
	}
	return view, nil
}
