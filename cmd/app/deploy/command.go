package deploy

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/sevenkilo/tracker-backend/cmd/app/cli"
	"github.com/sevenkilo/tracker-backend/internal/deploy"
)

type commandDeps struct {
	fx.In

	Runner *deploy.Runner
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "deploy",
		Usage: "run the deploy sequence: migrate, collect static assets, restart the unit, probe",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "skip-restart",
				Usage: "apply migrations and assets without restarting the service unit",
			},
		},
		Action: func(c *cli.Context) error {
			deps := cliapp.Populate[commandDeps]()
			return deps.Runner.Run(c.Context, deploy.Options{
				SkipRestart: c.Bool("skip-restart"),
			})
		},
	}
}
