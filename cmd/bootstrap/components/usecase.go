package components

import (
	"vetclinic/internal/pkg/clock"
	"vetclinic/internal/usecase"
	"vetclinic/internal/usecase/commands"
	"vetclinic/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewAppointmentCommands,
		commands.NewCartCommands,
		commands.NewOrderCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewAppointmentQueries,
		queries.NewCartQueries,
		queries.NewOrderQueries,
		queries.NewInventoryQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
