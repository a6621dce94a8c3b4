package service

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

// captureLogs redirects the global logger into a buffer for the test's
// duration.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

type fakeRestarter struct {
	calls []string
	err   error
}

func (f *fakeRestarter) Restart(_ context.Context, unit string) error {
	f.calls = append(f.calls, unit)
	return f.err
}

func testProbe(url string, restarter *fakeRestarter, usage int) *Probe {
	return &Probe{
		URL:           url,
		Unit:          "tracker.service",
		Threshold:     90,
		DataPartition: "/",
		Client:        &http.Client{Timeout: time.Second},
		Restarter:     restarter,
		DiskUsage:     func(string) (int, error) { return usage, nil },
		Notifier:      &Notifier{client: http.DefaultClient},
	}
}

func TestProbeHealthyEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	restarter := &fakeRestarter{}
	err := testProbe(srv.URL, restarter, 50).Run(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, restarter.calls, "healthy endpoint must not trigger a restart")
}

func TestProbeUnhealthyEndpointRestartsOnce(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusBadGateway, http.StatusMovedPermanently} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		restarter := &fakeRestarter{}
		probe := testProbe(srv.URL, restarter, 50)
		probe.Client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
		err := probe.Run(context.Background())
		srv.Close()

		assert.Error(t, err, "status %d must fail the probe", status)
		assert.Equal(t, []string{"tracker.service"}, restarter.calls, "status %d must restart exactly once", status)
	}
}

func TestProbeUnreachableEndpointRestartsOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	restarter := &fakeRestarter{}
	err := testProbe(srv.URL, restarter, 50).Run(context.Background())

	assert.Error(t, err)
	assert.Len(t, restarter.calls, 1)
}

func TestProbeRestartFailureSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	restarter := &fakeRestarter{err: assert.AnError}
	err := testProbe(srv.URL, restarter, 50).Run(context.Background())

	assert.ErrorContains(t, err, "restart failed")
	assert.Len(t, restarter.calls, 1)
}

func TestProbeDiskCheckDoesNotAffectResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	restarter := &fakeRestarter{}
	// Above threshold: warn only, no restart, no error.
	err := testProbe(srv.URL, restarter, 95).Run(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, restarter.calls)
}

func TestProbeDiskAboveThresholdWarns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	logs := captureLogs(t)
	err := testProbe(srv.URL, &fakeRestarter{}, 95).Run(context.Background())

	assert.NoError(t, err)
	assert.Contains(t, logs.String(), "disk usage above threshold")
	assert.Contains(t, logs.String(), `"usagePercent":95`)
	assert.Contains(t, logs.String(), `"threshold":90`)
}

func TestProbeDiskBelowThresholdStaysQuiet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	logs := captureLogs(t)
	err := testProbe(srv.URL, &fakeRestarter{}, 50).Run(context.Background())

	assert.NoError(t, err)
	assert.NotContains(t, logs.String(), "disk usage above threshold")
}
