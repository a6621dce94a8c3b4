package service

import (
	"compress/gzip"
	"context"
	"database/sql"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func testDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+filepath.Join(t.TempDir(), "test.sqlite3"))
	require.NoError(t, err)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec("CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT)")
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO kv (k, v) VALUES ('probe', 'data')")
	require.NoError(t, err)
	return db
}

func testBackup(t *testing.T, db *bun.DB) *Backup {
	t.Helper()
	return &Backup{
		DB:        db,
		Notifier:  &Notifier{client: http.DefaultClient},
		Dir:       t.TempDir(),
		Retention: 7 * 24 * time.Hour,
		now:       time.Now,
	}
}

func TestBackupRunProducesArchive(t *testing.T) {
	b := testBackup(t, testDB(t))
	b.now = func() time.Time { return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC) }

	require.NoError(t, b.Run(context.Background()))

	archives, err := filepath.Glob(filepath.Join(b.Dir, "db_*.sqlite3.gz"))
	require.NoError(t, err)
	require.Len(t, archives, 1)
	assert.Equal(t, "db_20260314_150926.sqlite3.gz", filepath.Base(archives[0]))

	// The raw snapshot must be gone once the archive exists.
	raw, err := filepath.Glob(filepath.Join(b.Dir, "db_*.sqlite3"))
	require.NoError(t, err)
	assert.Empty(t, raw)

	// The archive must decompress to a readable SQLite file.
	f, err := os.Open(archives[0])
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	content, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.True(t, len(content) > 16)
	assert.Equal(t, "SQLite format 3\x00", string(content[:16]))
}

func TestBackupRunFailureLeavesNoArchive(t *testing.T) {
	b := testBackup(t, testDB(t))

	// A regular file where the backup directory should be makes MkdirAll
	// fail, aborting the run before any snapshot is taken.
	blocked := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))
	b.Dir = blocked

	err := b.Run(context.Background())
	assert.ErrorContains(t, err, "backup directory")

	archives, globErr := filepath.Glob(filepath.Join(filepath.Dir(blocked), "db_*.sqlite3.gz"))
	require.NoError(t, globErr)
	assert.Empty(t, archives)
}

func TestBackupFailureAlertsOperators(t *testing.T) {
	var sent []resendPayload
	notifier := &Notifier{
		apiKey:     "test-key",
		from:       "tracker@example.com",
		recipients: []string{"ops@example.com"},
		client: &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			var p resendPayload
			require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
			sent = append(sent, p)
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"id":"1"}`)),
			}, nil
		})},
	}

	b := testBackup(t, testDB(t))
	b.Notifier = notifier
	blocked := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))
	b.Dir = blocked

	require.Error(t, b.Run(context.Background()))

	require.Len(t, sent, 1)
	assert.Equal(t, "[tracker] database backup failed", sent[0].Subject)
	assert.Equal(t, []string{"ops@example.com"}, sent[0].To)
	assert.Contains(t, sent[0].Text, "backup directory")
}

func TestBackupPruneRetention(t *testing.T) {
	b := testBackup(t, nil)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	b.Retention = 72 * time.Hour

	write := func(name string, age time.Duration) string {
		path := filepath.Join(b.Dir, name)
		require.NoError(t, os.WriteFile(path, []byte("archive"), 0o644))
		require.NoError(t, os.Chtimes(path, now.Add(-age), now.Add(-age)))
		return path
	}

	fresh := write("db_20260313_120000.sqlite3.gz", 24*time.Hour)
	edge := write("db_20260311_130000.sqlite3.gz", 71*time.Hour)
	expired := write("db_20260310_120000.sqlite3.gz", 96*time.Hour)
	unrelated := write("notes.txt", 96*time.Hour)

	require.NoError(t, b.Prune())

	assert.FileExists(t, fresh)
	assert.FileExists(t, edge)
	assert.NoFileExists(t, expired)
	assert.FileExists(t, unrelated, "prune only touches backup archives")

	// Idempotent: a second prune removes nothing further.
	require.NoError(t, b.Prune())
	assert.FileExists(t, fresh)
	assert.FileExists(t, edge)
}
