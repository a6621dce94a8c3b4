package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/sevenkilo/tracker-backend/internal/app/appconfig"
	"github.com/sevenkilo/tracker-backend/internal/app/appcontext"
	"github.com/sevenkilo/tracker-backend/internal/controller"
	"github.com/sevenkilo/tracker-backend/internal/deploy"
	"github.com/sevenkilo/tracker-backend/internal/infra"
	"github.com/sevenkilo/tracker-backend/internal/model/cache"
	"github.com/sevenkilo/tracker-backend/internal/pkg/logger"
	"github.com/sevenkilo/tracker-backend/internal/repo"
	"github.com/sevenkilo/tracker-backend/internal/server"
	"github.com/sevenkilo/tracker-backend/internal/service"
	"github.com/sevenkilo/tracker-backend/internal/workers/calcwkr"
	"github.com/sevenkilo/tracker-backend/internal/workers/maintwkr"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// logger and configuration are the only two things that are not in the fx graph
	// because some other packages need them to be initialized before fx starts
	logger.Configure(conf)

	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Infrastructures
		infra.Module(),

		// Servers
		server.Module(),

		// Repositories
		repo.Module(),

		// Services
		service.Module(),

		// Deploy runner (used by the deploy CLI command)
		deploy.Module(),

		// Global Singleton Inits: keep those before controllers, as controllers are
		// also fx#Invoke functions and invocations run in registration order.
		fx.Invoke(infra.SentryInit),
		fx.Invoke(cache.Initialize),

		// Controllers
		controller.Module(),

		// Workers
		fx.Invoke(calcwkr.Start),
		fx.Invoke(maintwkr.Start),

		// fx Extra Options
		fx.StartTimeout(1 * time.Second),
		// StopTimeout is not typically needed, since we're using fiber's Shutdown(),
		// in which fiber has its own IdleTimeout for controlling the shutdown timeout.
		// It acts as a countermeasure in case the fiber app is not properly shutting down.
		fx.StopTimeout(5 * time.Minute),
	}

	return append(baseOpts, additionalOpts...)
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
