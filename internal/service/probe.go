package service

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"

	"github.com/sevenkilo/tracker-backend/internal/app/appconfig"
	"github.com/sevenkilo/tracker-backend/internal/pkg/observability"
)

// Restarter restarts the application's service-manager unit.
type Restarter interface {
	Restart(ctx context.Context, unit string) error
}

// SystemdRestarter shells out to systemctl. The probe runs as a user with
// sudo rights on the restart command only.
type SystemdRestarter struct{}

func (SystemdRestarter) Restart(ctx context.Context, unit string) error {
	out, err := exec.CommandContext(ctx, "sudo", "systemctl", "restart", unit).CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "systemctl restart %s: %s", unit, out)
	}
	return nil
}

// DiskUsage reports used capacity of the filesystem at path in whole percent.
type DiskUsage func(path string) (int, error)

func statfsDiskUsage(path string) (int, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, errors.Wrapf(err, "statfs %s", path)
	}
	if stat.Blocks == 0 {
		return 0, nil
	}
	used := stat.Blocks - stat.Bfree
	return int(used * 100 / stat.Blocks), nil
}

// Probe checks the public endpoint and the data partition. One Run is one
// cron tick: a failed check acts exactly once, with no retry inside the tick.
type Probe struct {
	URL           string
	Unit          string
	Threshold     int
	DataPartition string

	Client    *http.Client
	Restarter Restarter
	DiskUsage DiskUsage
	Notifier  *Notifier
}

func NewProbe(conf *appconfig.Config, notifier *Notifier) *Probe {
	return &Probe{
		URL:           conf.HealthProbeURL,
		Unit:          conf.ServiceUnit,
		Threshold:     conf.DiskUsageThreshold,
		DataPartition: conf.DataPartition,
		Client:        &http.Client{Timeout: conf.HealthProbeTimeout},
		Restarter:     SystemdRestarter{},
		DiskUsage:     statfsDiskUsage,
		Notifier:      notifier,
	}
}

// Run performs one probe invocation. The endpoint check restarts the unit on
// anything but HTTP 200; the disk check only warns. Run returns an error when
// the endpoint was unhealthy so the one-shot CLI exits non-zero.
func (p *Probe) Run(ctx context.Context) error {
	probeErr := p.checkEndpoint(ctx)
	if probeErr != nil {
		observability.MaintenanceRuns.WithLabelValues("healthcheck", "failure").Inc()
	} else {
		observability.MaintenanceRuns.WithLabelValues("healthcheck", "success").Inc()
	}
	p.checkDisk()
	return probeErr
}

func (p *Probe) checkEndpoint(ctx context.Context) error {
	start := time.Now()
	healthy, detail := p.probeOnce(ctx)
	if healthy {
		log.Info().Str("url", p.URL).Dur("elapsed", time.Since(start)).Msg("health check passed")
		return nil
	}

	log.Error().Str("url", p.URL).Str("detail", detail).Msg("health check failed, restarting service")

	if err := p.Restarter.Restart(ctx, p.Unit); err != nil {
		log.Error().Err(err).Str("unit", p.Unit).Msg("failed to restart service")
		p.Notifier.NotifyFailure(ctx, "service restart", err)
		return errors.Wrap(err, "health check failed and restart failed")
	}

	log.Info().Str("unit", p.Unit).Msg("service restarted")
	p.Notifier.NotifyFailure(ctx, "health check", errors.Errorf("%s unhealthy (%s), unit %s restarted", p.URL, detail, p.Unit))
	return errors.Errorf("health check failed: %s", detail)
}

func (p *Probe) probeOnce(ctx context.Context) (healthy bool, detail string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return false, err.Error()
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return false, err.Error()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Sprintf("unexpected status %s", resp.Status)
	}
	return true, ""
}

func (p *Probe) checkDisk() {
	usage, err := p.DiskUsage(p.DataPartition)
	if err != nil {
		log.Error().Err(err).Str("partition", p.DataPartition).Msg("failed to read disk usage")
		return
	}
	if usage > p.Threshold {
		log.Warn().Int("usagePercent", usage).Int("threshold", p.Threshold).
			Str("partition", p.DataPartition).Msg("disk usage above threshold")
		return
	}
	log.Debug().Int("usagePercent", usage).Str("partition", p.DataPartition).Msg("disk usage ok")
}
