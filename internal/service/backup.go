package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"github.com/sevenkilo/tracker-backend/internal/app/appconfig"
	"github.com/sevenkilo/tracker-backend/internal/pkg/observability"
)

const backupTimeFormat = "20060102_150405"

// Backup produces verified, timestamped snapshots of the SQLite database.
// Every step's error is checked and aborts the run; the completion log line
// is only written after the compressed snapshot exists on disk.
type Backup struct {
	DB        *bun.DB
	S3Client  *s3.Client
	Notifier  *Notifier
	Dir       string
	Retention time.Duration
	Bucket    string

	// now is swapped in tests to pin snapshot names.
	now func() time.Time
}

func NewBackup(conf *appconfig.Config, db *bun.DB, s3Client *s3.Client, notifier *Notifier) *Backup {
	return &Backup{
		DB:        db,
		S3Client:  s3Client,
		Notifier:  notifier,
		Dir:       conf.BackupDir,
		Retention: conf.BackupRetention,
		Bucket:    conf.BackupS3Bucket,
		now:       time.Now,
	}
}

// Run performs one full backup cycle: WAL checkpoint, online snapshot,
// compression, retention pruning and the optional off-site mirror. On any
// failure it alerts the operators and returns the error without logging
// completion.
func (b *Backup) Run(ctx context.Context) error {
	archive, err := b.run(ctx)
	if err != nil {
		observability.MaintenanceRuns.WithLabelValues("backup", "failure").Inc()
		log.Error().Err(err).Msg("backup failed")
		b.Notifier.NotifyFailure(ctx, "database backup", err)
		return err
	}

	observability.MaintenanceRuns.WithLabelValues("backup", "success").Inc()
	if info, statErr := os.Stat(archive); statErr == nil {
		observability.BackupArchiveBytes.WithLabelValues().Set(float64(info.Size()))
	}
	log.Info().Str("archive", archive).Msg("backup completed")
	return nil
}

func (b *Backup) run(ctx context.Context) (string, error) {
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create backup directory")
	}

	// Fold the WAL into the main file so the snapshot is complete.
	if _, err := b.DB.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return "", errors.Wrap(err, "failed to checkpoint WAL")
	}

	stamp := b.now().Format(backupTimeFormat)
	snapshot := filepath.Join(b.Dir, fmt.Sprintf("db_%s.sqlite3", stamp))

	// VACUUM INTO writes a consistent copy without blocking readers.
	if _, err := b.DB.ExecContext(ctx, "VACUUM INTO ?", snapshot); err != nil {
		return "", errors.Wrap(err, "failed to snapshot database")
	}

	archive := snapshot + ".gz"
	if err := compressFile(snapshot, archive); err != nil {
		os.Remove(archive)
		return "", err
	}
	if err := os.Remove(snapshot); err != nil {
		return "", errors.Wrap(err, "failed to remove raw snapshot")
	}

	if err := b.Prune(); err != nil {
		return "", err
	}

	if err := b.mirror(ctx, archive); err != nil {
		return "", err
	}

	return archive, nil
}

func compressFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "failed to open snapshot")
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "failed to create archive")
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		gz.Close()
		return errors.Wrap(err, "failed to compress snapshot")
	}
	if err := gz.Close(); err != nil {
		return errors.Wrap(err, "failed to finalize archive")
	}
	return out.Sync()
}

// Prune removes archives older than the retention window. Re-running after a
// prune removes nothing.
func (b *Backup) Prune() error {
	archives, err := filepath.Glob(filepath.Join(b.Dir, "db_*.sqlite3.gz"))
	if err != nil {
		return errors.Wrap(err, "failed to list archives")
	}

	cutoff := b.now().Add(-b.Retention)
	for _, archive := range archives {
		info, err := os.Stat(archive)
		if err != nil {
			return errors.Wrapf(err, "failed to stat %s", archive)
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(archive); err != nil {
			return errors.Wrapf(err, "failed to prune %s", archive)
		}
		log.Info().Str("archive", archive).Msg("pruned expired backup")
	}
	return nil
}

func (b *Backup) mirror(ctx context.Context, archive string) error {
	if b.S3Client == nil || b.Bucket == "" {
		return nil
	}

	f, err := os.Open(archive)
	if err != nil {
		return errors.Wrap(err, "failed to open archive for upload")
	}
	defer f.Close()

	_, err = b.S3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.Bucket),
		Key:    aws.String(filepath.Base(archive)),
		Body:   f,
	})
	if err != nil {
		return errors.Wrap(err, "failed to mirror archive to s3")
	}
	log.Info().Str("bucket", b.Bucket).Str("key", filepath.Base(archive)).Msg("backup mirrored off-site")
	return nil
}
