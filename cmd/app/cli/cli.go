package cli

import (
	"context"

	"go.uber.org/fx"

	"github.com/sevenkilo/tracker-backend/internal/app"
	"github.com/sevenkilo/tracker-backend/internal/app/appcontext"
)

// Start spins up the fx graph for one-shot CLI invocations (cron jobs,
// maintenance scripts) without binding the HTTP listener.
func Start(module fx.Option) {
	app.New(appcontext.Declare(appcontext.EnvCLI), module).Start(context.Background())
}

// Populate builds the graph and extracts dependencies of type T out of it.
func Populate[T any]() T {
	var deps T
	Start(fx.Populate(&deps))
	return deps
}
