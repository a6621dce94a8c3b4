package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/sevenkilo/tracker-backend/internal/model"
)

func freshDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+filepath.Join(t.TempDir(), "migrate.sqlite3"))
	require.NoError(t, err)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunCreatesSchemaOnFreshDatabase(t *testing.T) {
	db := freshDB(t)
	ctx := context.Background()

	require.NoError(t, Run(ctx, db))

	// Every index must land on its own table, not on the first model's.
	var indexedTables []struct {
		Name    string `bun:"name"`
		Table   string `bun:"tbl_name"`
	}
	err := db.NewSelect().
		Table("sqlite_master").
		Column("name", "tbl_name").
		Where("type = 'index'").
		Where("name LIKE 'idx_%'").
		Scan(ctx, &indexedTables)
	require.NoError(t, err)

	byName := make(map[string]string, len(indexedTables))
	for _, idx := range indexedTables {
		byName[idx.Name] = idx.Table
	}
	assert.Equal(t, "manufacturing_orders", byName["idx_manufacturing_orders_status"])
	assert.Equal(t, "stop_events", byName["idx_stop_events_run"])
	assert.Equal(t, "production_reports", byName["idx_production_reports_run"])
	assert.Equal(t, "production_runs", byName["idx_production_runs_date"])
}

func TestRunIsIdempotent(t *testing.T) {
	db := freshDB(t)
	ctx := context.Background()

	require.NoError(t, Run(ctx, db))
	require.NoError(t, Run(ctx, db))
}

func TestSeedInsertsShiftsOnce(t *testing.T) {
	db := freshDB(t)
	ctx := context.Background()

	require.NoError(t, Run(ctx, db))
	require.NoError(t, Seed(ctx, db))
	require.NoError(t, Seed(ctx, db))

	count, err := db.NewSelect().Model((*model.Shift)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}
