package components

import (
	"vetclinic/internal/infra/db"
	"vetclinic/internal/infra/readstore"
	"vetclinic/internal/infra/uow"
	"vetclinic/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewAppointmentReadStore,
			fx.As(new(queries.AppointmentViewRepo)),
		),
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderViewRepo)),
		),
		fx.Annotate(
			readstore.NewCartReadStore,
			fx.As(new(queries.CartViewRepo)),
		),
		fx.Annotate(
			readstore.NewProductReadStore,
			fx.As(new(queries.InventoryViewRepo)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
