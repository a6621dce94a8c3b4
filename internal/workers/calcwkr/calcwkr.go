package calcwkr

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
	ReportService *service.Report
	TrendService  *service.Trend
}

type Worker struct {
	// count counts batches worker has completed so far
	count int

	// sep describes the separation time in-between different microtasks
	sep time.Duration

	// interval describes the interval in-between different batches of recalculation
	interval time.Duration

	// trendInterval describes the cadence of trend cache refreshes
	trendInterval time.Duration

	// timeout bounds a single batch
	timeout time.Duration

	// deps
	WorkerDeps
}

func Start(conf *appconfig.Config, deps WorkerDeps) {
	if !conf.WorkerEnabled {
		log.Info().Msg("calc worker is disabled")
		return
	}
	(&Worker{
		sep:           conf.WorkerSeparation,
		interval:      conf.WorkerInterval,
		trendInterval: conf.WorkerTrendInterval,
		timeout:       conf.WorkerTimeout,
		WorkerDeps:    deps,
	}).do()
}

func (w *Worker) do() context.CancelFunc {
	parent, cancel := context.WithCancel(context.Background())
	go func() {
		lastTrendRefresh := time.Time{}
		for {
			log.Info().Int("count", w.count).Msg("worker batch started")

			ctx, batchCancel := context.WithTimeout(parent, w.timeout)

			log.Info().Str("task", "reports").Msg("worker calculating")
			n, err := observeCalcDuration("reports", func() (int, error) {
				return w.ReportService.RecalculateStale(ctx, w.sep)
			})
			if err != nil {
				log.Error().Err(err).Str("task", "reports").Msg("worker batch failed")
			} else {
				log.Debug().Int("reports", n).Str("task", "reports").Msg("worker finished")
			}

			if time.Since(lastTrendRefresh) >= w.trendInterval {
				time.Sleep(w.sep)
				log.Info().Str("task", "trend").Msg("worker calculating")
				_, err := observeCalcDuration("trend", func() (int, error) {
					return 0, w.TrendService.RefreshCaches(ctx)
				})
				if err != nil {
					log.Error().Err(err).Str("task", "trend").Msg("worker batch failed")
				} else {
					lastTrendRefresh = time.Now()
					log.Debug().Str("task", "trend").Msg("worker finished")
				}
			}

			batchCancel()
			log.Info().Int("count", w.count).Msg("worker batch finished")

			w.count++

			select {
			case <-parent.Done():
				return
			case <-time.After(w.interval):
			}
		}
	}()

	return cancel
}

func (w *Worker) Count() int {
	return w.count
}
