package deploy

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("deploy", fx.Provide(
		NewRunner,
	))
}
