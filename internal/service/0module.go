package service

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("service", fx.Provide(
		NewAlert,
		NewTrend,
		NewProbe,
		NewBackup,
		NewHealth,
		NewReport,
		NewCatalog,
		NewSummary,
		NewDowntime,
		NewNotifier,
		NewUtilization,
		NewPDFExporter,
	))
}
