package bootstrap

import (
	"ski-stays/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	ClockModule,
	MetricsModule,
	DBModule,
	CacheModule,
	JWTModule,
	components.ClientModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
