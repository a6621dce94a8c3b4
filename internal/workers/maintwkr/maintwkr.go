// Package maintwkr runs the periodic maintenance actions in-process when the
// host has no cron: the health probe on a short cadence and the database
// backup on a daily one. The one-shot CLI commands remain the cron-friendly
// entry points.
package maintwkr

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/sevenkilo/tracker-backend/internal/app/appconfig"
	"github.com/sevenkilo/tracker-backend/internal/service"
)

type WorkerDeps struct {
	fx.In
	Probe  *service.Probe
	Backup *service.Backup
}

type Worker struct {
	probeInterval  time.Duration
	backupInterval time.Duration

	WorkerDeps
}

func Start(conf *appconfig.Config, deps WorkerDeps) {
	if !conf.WorkerEnabled {
		log.Info().Msg("maintenance worker is disabled")
		return
	}
	(&Worker{
		probeInterval:  conf.HealthProbeInterval,
		backupInterval: conf.BackupInterval,
		WorkerDeps:     deps,
	}).do()
}

func (w *Worker) do() context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		ticker := time.NewTicker(w.probeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// Run already logs and alerts; a failed tick must not stop the loop.
				if err := w.Probe.Run(ctx); err != nil {
					log.Error().Err(err).Msg("maintenance probe tick failed")
				}
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(w.backupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := w.Backup.Run(ctx); err != nil {
					log.Error().Err(err).Msg("maintenance backup tick failed")
				}
			}
		}
	}()

	return cancel
}
