// Package deploy drives the in-place deployment sequence: migrate the
// schema, collect static assets, restart the service unit and verify it came
// back. Every step is idempotent so a failed deploy can simply be re-run.
package deploy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"github.com/sevenkilo/tracker-backend/internal/app/appconfig"
	"github.com/sevenkilo/tracker-backend/internal/migrations"
	"github.com/sevenkilo/tracker-backend/internal/service"
)

type Options struct {
	// SkipRestart leaves the running unit alone; useful when only static
	// assets changed.
	SkipRestart bool
}

type step struct {
	name string
	run  func(ctx context.Context) error
	// hints are printed when the step fails, taken from the ops runbook.
	hints []string
}

type Runner struct {
	DB        *bun.DB
	Restarter service.Restarter
	Client    *http.Client

	SourceDir string
	StaticDir string
	Unit      string
	ProbeURL  string

	probeAttempts uint
	probeDelay    time.Duration
}

func NewRunner(conf *appconfig.Config, db *bun.DB) *Runner {
	return &Runner{
		DB:        db,
		Restarter: service.SystemdRestarter{},
		Client:    &http.Client{Timeout: conf.HealthProbeTimeout},
		SourceDir: conf.StaticSourceDir,
		StaticDir: conf.StaticRoot,
		Unit:      conf.ServiceUnit,
		ProbeURL:  conf.HealthProbeURL,

		probeAttempts: 10,
		probeDelay:    2 * time.Second,
	}
}

// Run executes the deploy steps in order and stops at the first failure,
// reporting which step failed together with its troubleshooting hints. There
// is no automatic rollback.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	steps := []step{
		{
			name: "migrate",
			run:  r.migrate,
			hints: []string{
				"check that the database file is writable by the service user",
				"a locked database usually means another process holds a write transaction",
			},
		},
		{
			name: "collectstatic",
			run:  r.collectStatic,
			hints: []string{
				"verify the static source directory exists and is readable",
			},
		},
	}
	if !opts.SkipRestart {
		steps = append(steps,
			step{
				name: "restart",
				run:  r.restart,
				hints: []string{
					"journalctl -u " + r.Unit + " -n 50 shows why the unit refused to start",
					"check sudoers allows the deploy user to restart the unit",
				},
			},
			step{
				name: "probe",
				run:  r.probe,
				hints: []string{
					"curl -v " + r.ProbeURL + " from the host to see the raw response",
					"journalctl -u " + r.Unit + " -n 50 for startup errors",
					"check the listen address and reverse proxy config",
				},
			},
		)
	}

	for _, s := range steps {
		log.Info().Str("step", s.name).Msg("deploy step started")
		if err := s.run(ctx); err != nil {
			log.Error().Err(err).Str("step", s.name).Msg("deploy step failed")
			for _, hint := range s.hints {
				fmt.Fprintln(os.Stderr, "hint: "+hint)
			}
			return errors.Wrapf(err, "deploy failed in step %q", s.name)
		}
		log.Info().Str("step", s.name).Msg("deploy step completed")
	}

	log.Info().Msg("deploy completed")
	return nil
}

func (r *Runner) migrate(ctx context.Context) error {
	if err := migrations.Run(ctx, r.DB); err != nil {
		return err
	}
	return migrations.Seed(ctx, r.DB)
}

// collectStatic syncs the source tree into the static root. Copying is
// unconditional; the result converges to the same state on every run.
func (r *Runner) collectStatic(_ context.Context) error {
	if _, err := os.Stat(r.SourceDir); os.IsNotExist(err) {
		log.Warn().Str("dir", r.SourceDir).Msg("static source missing, skipping collectstatic")
		return nil
	}

	return filepath.Walk(r.SourceDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(r.SourceDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(r.StaticDir, rel)

		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

func (r *Runner) restart(ctx context.Context) error {
	return r.Restarter.Restart(ctx, r.Unit)
}

// probe polls the public endpoint with backoff until it answers 200, giving
// the unit time to come up after restart.
func (r *Runner) probe(ctx context.Context) error {
	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.ProbeURL, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := r.Client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return errors.Errorf("unexpected status %s", resp.Status)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(r.probeAttempts),
		retry.Delay(r.probeDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.MaxDelay(30*time.Second),
	)
}
