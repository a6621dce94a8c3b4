package infra

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/sevenkilo/tracker-backend/internal/app/appconfig"
)

// SQLite opens the tracker database in WAL mode. WAL is a hard precondition
// for the backup job: it is what makes the checkpoint-then-snapshot sequence
// safe while the server keeps writing (readers never block the single writer).
func SQLite(conf *appconfig.Config) (*bun.DB, error) {
	if err := os.MkdirAll(filepath.Dir(conf.SQLitePath), 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)",
		conf.SQLitePath, conf.SQLiteBusyTimeout.Milliseconds())

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		log.Error().Err(err).Msg("infra: sqlite: failed to open database")
		return nil, err
	}

	// SQLite allows a single writer; keeping one conn avoids SQLITE_BUSY churn.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if conf.BunDebugVerbose {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	} else {
		db.AddQueryHook(bundebug.NewQueryHook())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Error().Err(err).Msg("infra: sqlite: failed to ping database")
		return nil, err
	}

	return db, nil
}
