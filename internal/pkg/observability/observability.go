package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "trackerbackend"
)

var (
	WorkerCalcDuration = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "worker", "calc_duration_seconds"),
		Help: "Duration of last worker calculation in seconds",
	}, []string{"task"})
	WorkerReportsRecalculated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "worker", "reports_recalculated_total"),
		Help: "Production reports recalculated by the background worker",
	}, []string{})
	MaintenanceRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "maintenance", "runs_total"),
		Help: "Maintenance action outcomes",
	}, []string{"action", "outcome"})
	BackupArchiveBytes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "maintenance", "backup_archive_bytes"),
		Help: "Size of the most recent backup archive in bytes",
	}, []string{})
)
