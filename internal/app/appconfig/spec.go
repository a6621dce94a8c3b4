package appconfig

import (
	"time"

	"github.com/sevenkilo/tracker-backend/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9010"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// LogFilePath is where the rotating application log is written.
	LogFilePath string `split_words:"true" default:"logs/app.log"`

	// TrustedProxies is a list of proxies trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// DevMode to indicate development mode. When true, the program spins up debugging utilities
	// and skips the production-only middleware. See internal/server/httpserver/http.go.
	DevMode bool `split_words:"true"`

	// TracingEnabled to indicate whether to enable OpenTelemetry tracing (jaeger exporter).
	TracingEnabled bool `split_words:"true"`

	// TracingSampleRate between 0.0 (disabled) and 1.0 (all traces).
	TracingSampleRate float64 `split_words:"true" default:"1.0"`

	// infrastructure components connection instructions

	// SQLitePath is the path of the tracker database file. WAL journaling is enabled on connect;
	// the -wal and -shm auxiliary files live alongside it.
	SQLitePath string `required:"true" split_words:"true" default:"data/db.sqlite3"`

	SQLiteBusyTimeout time.Duration `split_words:"true" default:"30s"`

	BunDebugVerbose bool `split_words:"true"`

	// SentryDSN enables Sentry alerting for failed maintenance actions and unhandled errors.
	SentryDSN string `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// maintenance: health probe

	// HealthProbeURL is probed by the healthcheck command and the maintenance worker.
	// Success is strictly HTTP 200; anything else restarts ServiceUnit.
	HealthProbeURL string `split_words:"true" default:"http://127.0.0.1:8000/"`

	HealthProbeTimeout  time.Duration `split_words:"true" default:"10s"`
	HealthProbeInterval time.Duration `split_words:"true" default:"5m"`

	// DiskUsageThreshold is the data partition usage percentage above which a warning is reported.
	DiskUsageThreshold int `split_words:"true" default:"80"`

	// DataPartition is the mount point whose usage the probe inspects.
	DataPartition string `split_words:"true" default:"/"`

	// ServiceUnit is the systemd unit restarted when the probe fails.
	ServiceUnit string `split_words:"true" default:"tracker.service"`

	// maintenance: backups

	// BackupDir receives timestamped db_<YYYYMMDD_HHMMSS>.sqlite3.gz snapshots.
	BackupDir string `split_words:"true" default:"data/backups"`

	// BackupRetention prunes snapshot files older than this window (default 30 days).
	BackupRetention time.Duration `split_words:"true" default:"720h"`

	BackupInterval time.Duration `split_words:"true" default:"24h"`

	// BackupS3Bucket, when set, mirrors each snapshot off-site after the local write is verified.
	BackupS3Bucket string `split_words:"true"`
	BackupS3Region string `split_words:"true" default:"eu-west-1"`
	AWSAccessKey   string `split_words:"true"`
	AWSSecretKey   string `split_words:"true"`

	// workers

	// WorkerEnabled is a flag to indicate whether to enable the background workers.
	WorkerEnabled bool `split_words:"true"`

	// WorkerInterval describes the interval in-between different batches of report recalculation.
	WorkerInterval time.Duration `required:"true" split_words:"true" default:"10m"`

	// WorkerTrendInterval describes the interval in-between trend cache refreshes.
	WorkerTrendInterval time.Duration `required:"true" split_words:"true" default:"6h"`

	// WorkerSeparation describes the separation time in-between different microtasks.
	WorkerSeparation time.Duration `required:"true" split_words:"true" default:"3s"`

	// WorkerTimeout describes the timeout for a single batch to run.
	WorkerTimeout time.Duration `required:"true" split_words:"true" default:"10m"`

	// deploy

	// StaticSourceDir is copied into StaticRoot by the deploy collect-static step.
	StaticSourceDir string `split_words:"true" default:"static"`
	StaticRoot      string `split_words:"true" default:"staticfiles"`

	// notifications (Resend transactional email)

	ResendAPIKey     string   `split_words:"true"`
	DefaultFromEmail string   `split_words:"true" default:"tracker@7kilo.com"`
	AlertRecipients  []string `split_words:"true"`

	// AdminKey is the key used to authenticate the admin API.
	AdminKey string `split_words:"true"`

	// PDF export

	// ChromiumBin optionally pins the browser binary used for PDF rendering;
	// empty lets rod resolve or download one.
	ChromiumBin string `split_words:"true"`

	// PDFRenderTimeout bounds a single report render, chart settle wait included.
	PDFRenderTimeout time.Duration `split_words:"true" default:"45s"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
