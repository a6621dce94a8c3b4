package healthcheck

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "github.com/sevenkilo/tracker-backend/cmd/app/cli"
	"github.com/sevenkilo/tracker-backend/internal/service"
)

type commandDeps struct {
	fx.In

	Probe *service.Probe
}

// Command is the cron entrypoint (`*/5 * * * *`): one probe of the app root,
// restart on non-200, disk usage check. No retries within an invocation.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "healthcheck",
		Usage: "probe the application once and restart the service unit on failure",
		Action: func(c *cli.Context) error {
			deps := cliapp.Populate[commandDeps]()
			return deps.Probe.Run(c.Context)
		},
	}
}
