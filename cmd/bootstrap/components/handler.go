package components

import (
	"promo-service/internal/handler"
	"promo-service/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewPromotionHandler,
		api.NewInvoiceHandler,
	),
	fx.Invoke(handler.NewRouter),
)
