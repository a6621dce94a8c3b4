package deploy

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type recordingRestarter struct {
	calls int
	err   error
}

func (r *recordingRestarter) Restart(context.Context, string) error {
	r.calls++
	return r.err
}

func testRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{
		Restarter: &recordingRestarter{},
		Client:    &http.Client{Timeout: time.Second},
		SourceDir: t.TempDir(),
		StaticDir: t.TempDir(),
		Unit:      "tracker.service",

		probeAttempts: 3,
		probeDelay:    time.Millisecond,
	}
}

func TestCollectStaticIdempotent(t *testing.T) {
	r := testRunner(t)
	require.NoError(t, os.MkdirAll(filepath.Join(r.SourceDir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(r.SourceDir, "css", "app.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(r.SourceDir, "logo.svg"), []byte("<svg/>"), 0o644))

	require.NoError(t, r.collectStatic(context.Background()))
	require.NoError(t, r.collectStatic(context.Background()), "second run must converge, not fail")

	got, err := os.ReadFile(filepath.Join(r.StaticDir, "css", "app.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(got))
	assert.FileExists(t, filepath.Join(r.StaticDir, "logo.svg"))
}

func TestCollectStaticOverwritesStaleFiles(t *testing.T) {
	r := testRunner(t)
	require.NoError(t, os.WriteFile(filepath.Join(r.SourceDir, "app.js"), []byte("v2"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(r.StaticDir, "app.js"), []byte("v1"), 0o644))

	require.NoError(t, r.collectStatic(context.Background()))

	got, err := os.ReadFile(filepath.Join(r.StaticDir, "app.js"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
}

func TestCollectStaticMissingSourceIsSkipped(t *testing.T) {
	r := testRunner(t)
	r.SourceDir = filepath.Join(r.SourceDir, "does-not-exist")

	assert.NoError(t, r.collectStatic(context.Background()))
}

func TestProbeRetriesUntilHealthy(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := testRunner(t)
	r.ProbeURL = srv.URL

	assert.NoError(t, r.probe(context.Background()))
	assert.Equal(t, int32(3), hits.Load())
}

func TestProbeFailsAfterExhaustedAttempts(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := testRunner(t)
	r.ProbeURL = srv.URL

	err := r.probe(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(3), hits.Load())
}

func testDeployDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+filepath.Join(t.TempDir(), "deploy.sqlite3"))
	require.NoError(t, err)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunStopsAtFailedStepWithStepName(t *testing.T) {
	var probeHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		probeHits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := testRunner(t)
	r.DB = testDeployDB(t)
	r.ProbeURL = srv.URL
	restarter := &recordingRestarter{err: assert.AnError}
	r.Restarter = restarter

	err := r.Run(context.Background(), Options{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `deploy failed in step "restart"`)
	assert.Equal(t, 1, restarter.calls)
	assert.Zero(t, probeHits.Load(), "probe must not run after the restart step failed")
}

func TestRunSkipRestartOmitsRestartAndProbe(t *testing.T) {
	r := testRunner(t)
	r.DB = testDeployDB(t)
	restarter := &recordingRestarter{}
	r.Restarter = restarter

	require.NoError(t, r.Run(context.Background(), Options{SkipRestart: true}))
	assert.Zero(t, restarter.calls)

	// Migrate and collectstatic converge: re-running the deploy succeeds.
	require.NoError(t, r.Run(context.Background(), Options{SkipRestart: true}))
}
