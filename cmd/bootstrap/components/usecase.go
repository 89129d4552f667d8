package components

import (
	"examgate/internal/pkg/clock"
	"examgate/internal/pkg/config"
	"examgate/internal/pkg/vouchercode"
	"examgate/internal/usecase"
	"examgate/internal/usecase/commands"
	"examgate/internal/usecase/queries"
	"examgate/internal/usecase/shared"

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
	func(cfg config.Config) (*vouchercode.Generator, error) {
		return vouchercode.NewGenerator(cfg.Voucher.CodeLength)
	},
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSlotQueries,
		queries.NewPurchaseQueries,
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(
			uow shared.UnitOfWork,
			purchaseQueries queries.PurchaseQueries,
			codes *vouchercode.Generator,
			cfg config.Config,
			clk clock.Clock,
		) commands.PurchaseCommands {
			return commands.NewPurchaseCommands(uow, purchaseQueries, codes, cfg.Voucher.MaxAttempts, clk)
		},
		commands.NewBookingCommands,
		commands.NewSlotAdminCommands,
	),
)
