package script_fold_can_rejects

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/sevenkilo/tracker-backend/cmd/app/cli"
	"github.com/uptrace/bun"
)

type commandDeps struct {
	fx.In

	DB *bun.DB
}

func Command() *cli.Command {
	return &cli.Command{
		Name:        "fold_can_rejects",
		Description: "fold the legacy qty_filled_can_reject column into qty_product_reject",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "preview affected rows without writing",
			},
		},
		Action: func(c *cli.Context) error {
			deps := cliapp.Populate[commandDeps]()
			return run(c, deps.DB, c.Bool("dry-run"))
		},
	}
}
