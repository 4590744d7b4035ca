package components

import (
	"ski-stays/internal/handler"
	"ski-stays/internal/handler/api"
	"ski-stays/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewHotelHandler,
		api.NewBookingHandler,
		api.NewAuthHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
