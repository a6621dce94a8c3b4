package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/sevenkilo/tracker-backend/cmd/app/backup"
	"github.com/sevenkilo/tracker-backend/cmd/app/deploy"
	"github.com/sevenkilo/tracker-backend/cmd/app/healthcheck"
	"github.com/sevenkilo/tracker-backend/cmd/app/runscript"
	"github.com/sevenkilo/tracker-backend/cmd/app/server"
	"github.com/sevenkilo/tracker-backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "trackerd",
		Description: "Production Tracker backend. Built with Go, fiber, bun and go.uber.org/fx. Persists to SQLite (WAL) and carries its own maintenance surface: health probe, DB snapshots and deploy helper.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			healthcheck.Command(),
			backup.Command(),
			deploy.Command(),
			runscript.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
