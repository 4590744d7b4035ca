package components

import (
	"ski-stays/internal/infra/payment"
	"ski-stays/internal/infra/upstream"
	"ski-stays/internal/pkg/config"
	"ski-stays/internal/pkg/obs"
	"ski-stays/internal/usecase/commands"
	"ski-stays/internal/usecase/queries"

	"go.uber.org/fx"
)

var ClientModule = fx.Module("client",
	fx.Provide(
		func(cfg config.Config, m *obs.Metrics) *upstream.Client {
			return upstream.NewClient(cfg.Upstream, m)
		},
		func(c *upstream.Client) (
			queries.HotelDirectory,
			queries.RateProvider,
			queries.BookingProvider,
			commands.BookingProvider,
		) {
			return c, c, c, c
		},
		fx.Annotate(
			func(cfg config.Config) *payment.Gateway {
				return payment.NewGateway(cfg.Payment)
			},
			fx.As(new(commands.PaymentGateway)),
		),
	),
)
