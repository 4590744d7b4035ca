package bootstrap

import (
	"ski-stays/internal/pkg/clock"
	"ski-stays/internal/pkg/config"
	"ski-stays/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config, clk clock.Clock) *jwt.Service {
	if cfg.JWT.SessionDuration <= 0 {
		panic("invalid JWT_SESSION_DURATION: must be positive")
	}
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.SessionDuration, clk)
}
