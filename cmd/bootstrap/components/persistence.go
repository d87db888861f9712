package components

import (
	"promo-service/internal/infra/db"
	"promo-service/internal/infra/readstore"
	"promo-service/internal/infra/uow"
	"promo-service/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewPromotionReadStore,
			fx.As(new(queries.PromotionReadStore)),
		),
		fx.Annotate(
			readstore.NewInvoiceReadStore,
			fx.As(new(queries.InvoiceReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
