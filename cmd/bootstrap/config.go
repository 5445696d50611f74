package bootstrap

import (
	"vetclinic/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		// Sections handed out separately so consumers do not drag the whole
		// config around.
		func(cfg config.Config) config.JWTConfig { return cfg.JWT },
	),
)
