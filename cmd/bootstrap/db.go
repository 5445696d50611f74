package bootstrap

import (
	"context"
	"log/slog"

	"vetclinic/internal/infra/db"
	"vetclinic/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// NewDB opens the clinic database pool and ties its shutdown to the fx
// lifecycle so in-flight checkout and booking transactions drain first.
func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}
	slog.Info("database pool ready", "host", cfg.DB.Host, "database", cfg.DB.DBName)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			slog.Info("closing database pool")
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
