package bootstrap

import (
	"vetclinic/internal/pkg/config"
	"vetclinic/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.JWTConfig) *jwt.Service {
	return jwt.NewService(cfg.Secret, cfg.AccessDuration, cfg.RefreshDuration)
}
