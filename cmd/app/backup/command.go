package backup

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/sevenkilo/tracker-backend/cmd/app/cli"
	"github.com/sevenkilo/tracker-backend/internal/service"
)

type commandDeps struct {
	fx.In

	Backup *service.Backup
}

// Command is the cron entrypoint (`0 2 * * *`): checkpoint the WAL, snapshot
// the database, compress, prune the retention window. Exits non-zero when any
// step fails so the scheduler surface sees the failure.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "snapshot the SQLite database and prune old backups",
		Action: func(c *cli.Context) error {
			deps := cliapp.Populate[commandDeps]()
			return deps.Backup.Run(c.Context)
		},
	}
}
