package components

import (
	"promo-service/internal/pkg/clock"
	"promo-service/internal/usecase/commands"
	"promo-service/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewPromotionCommands,
		commands.NewInvoiceCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewPromotionQueries,
		queries.NewInvoiceQueries,
	),
)
