package components

import (
	"vetclinic/internal/handler"
	"vetclinic/internal/handler/api"
	"vetclinic/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewAppointmentHandler,
		api.NewCartHandler,
		api.NewOrderHandler,
		api.NewInventoryHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
