package repo

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("repo", fx.Provide(
		NewShift,
		NewProduct,
		NewMachine,
		NewStopEvent,
		NewPackageSize,
		NewProductionRun,
		NewProductionLine,
		NewProductionReport,
		NewManufacturingOrder,
	))
}
