package repo

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/sevenkilo/tracker-backend/internal/migrations"
	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/pkg/apperr"
)

func orderDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+filepath.Join(t.TempDir(), "orders.sqlite3"))
	require.NoError(t, err)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Run(context.Background(), db))
	return db
}

func seedOrder(t *testing.T, db *bun.DB, number, status string, date time.Time) int {
	t.Helper()
	order := &model.ManufacturingOrder{
		OrderNumber:   number,
		OrderDate:     date,
		ProductID:     1,
		PackageSizeID: 1,
		Quantity:      500,
		Status:        status,
	}
	_, err := db.NewInsert().Model(order).Exec(context.Background())
	require.NoError(t, err)
	return order.OrderID
}

func TestGetOrderByID(t *testing.T) {
	db := orderDB(t)
	ctx := context.Background()
	r := NewManufacturingOrder(db)

	id := seedOrder(t, db, "MO-2026-001", model.OrderStatusPending, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	order, err := r.GetOrderByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "MO-2026-001", order.OrderNumber)
	assert.Equal(t, model.OrderStatusPending, order.Status)

	_, err = r.GetOrderByID(ctx, id+1000)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestGetOpenOrdersFiltersAndSorts(t *testing.T) {
	db := orderDB(t)
	ctx := context.Background()
	r := NewManufacturingOrder(db)

	seedOrder(t, db, "MO-2026-010", model.OrderStatusInProgress, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))
	seedOrder(t, db, "MO-2026-011", model.OrderStatusPending, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	seedOrder(t, db, "MO-2026-012", model.OrderStatusCompleted, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	seedOrder(t, db, "MO-2026-013", model.OrderStatusCancelled, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))

	orders, err := r.GetOpenOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	// Oldest open order first.
	assert.Equal(t, "MO-2026-011", orders[0].OrderNumber)
	assert.Equal(t, "MO-2026-010", orders[1].OrderNumber)
}

func TestUpdateStatus(t *testing.T) {
	db := orderDB(t)
	ctx := context.Background()
	r := NewManufacturingOrder(db)

	id := seedOrder(t, db, "MO-2026-020", model.OrderStatusPending, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))

	require.NoError(t, r.UpdateStatus(ctx, id, model.OrderStatusInProgress))

	order, err := r.GetOrderByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusInProgress, order.Status)
}
