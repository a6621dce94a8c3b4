package calcwkr

import (
	"time"

	"github.com/sevenkilo/tracker-backend/internal/pkg/observability"
)

func observeCalcDuration(task string, f func() (int, error)) (int, error) {
	start := time.Now()
	defer func() {
		dur := time.Since(start)
		observability.WorkerCalcDuration.WithLabelValues(task).Set(dur.Seconds())
	}()
	n, err := f()
	if task == "reports" && n > 0 {
		observability.WorkerReportsRecalculated.WithLabelValues().Add(float64(n))
	}
	return n, err
}
