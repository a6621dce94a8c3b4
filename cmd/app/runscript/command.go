package runscript

import (
	"github.com/urfave/cli/v2"

	script_fold_can_rejects "github.com/sevenkilo/tracker-backend/cmd/app/runscript/scripts/fold_can_rejects"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:        "run-script",
		Description: "run one-off maintenance go scripts",
		Subcommands: []*cli.Command{
			script_fold_can_rejects.Command(),
		},
	}
}
