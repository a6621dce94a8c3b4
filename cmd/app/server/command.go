package server

import (
	"github.com/urfave/cli/v2"

	"github.com/sevenkilo/tracker-backend/internal/app"
	"github.com/sevenkilo/tracker-backend/internal/app/appcontext"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "start the HTTP server and background workers",
		Action: func(c *cli.Context) error {
			app.New(appcontext.Declare(appcontext.EnvServer)).Run()
			return nil
		},
	}
}
