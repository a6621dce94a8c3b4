// Package migrations creates the schema on first boot. Every statement is
// idempotent so the deployment runner can call Run on every deploy.
package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"github.com/sevenkilo/tracker-backend/internal/model"
)

var tables = []any{
	(*model.ProductionLine)(nil),
	(*model.Product)(nil),
	(*model.PackageSize)(nil),
	(*model.Shift)(nil),
	(*model.Machine)(nil),
	(*model.DowntimeCode)(nil),
	(*model.ManufacturingOrder)(nil),
	(*model.ProductionRun)(nil),
	(*model.PackagingMaterial)(nil),
	(*model.Utility)(nil),
	(*model.StopEvent)(nil),
	(*model.ProductionReport)(nil),
}

var indexes = []struct {
	name    string
	table   string
	columns string
}{
	{"idx_production_runs_date", "production_runs", "date"},
	{"idx_production_runs_line_date", "production_runs", "line_id, date"},
	{"idx_production_runs_product", "production_runs", "product_id"},
	{"idx_stop_events_run", "stop_events", "run_id"},
	{"idx_production_reports_run", "production_reports", "run_id"},
	{"idx_manufacturing_orders_status", "manufacturing_orders", "status"},
}

func Run(ctx context.Context, db *bun.DB) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, table := range tables {
			if _, err := tx.NewCreateTable().Model(table).IfNotExists().WithForeignKeys().Exec(ctx); err != nil {
				return errors.Wrapf(err, "failed to create table for %T", table)
			}
		}
		for _, idx := range indexes {
			if _, err := tx.NewCreateIndex().
				Index(idx.name).
				Table(idx.table).
				ColumnExpr(idx.columns).
				IfNotExists().
				Exec(ctx); err != nil {
				return errors.Wrapf(err, "failed to create index %s", idx.name)
			}
		}
		return nil
	})
}

// Seed inserts the fixed shift catalog when the table is empty. Lines,
// products and machines come in through the admin surface.
func Seed(ctx context.Context, db *bun.DB) error {
	count, err := db.NewSelect().Model((*model.Shift)(nil)).Count(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to count shifts")
	}
	if count > 0 {
		return nil
	}

	shifts := []model.Shift{
		{Name: model.Shift8H1, StartTime: "06:00", EndTime: "14:00", DurationHours: 8},
		{Name: model.Shift8H2, StartTime: "14:00", EndTime: "22:00", DurationHours: 8},
		{Name: model.Shift8H3, StartTime: "22:00", EndTime: "06:00", DurationHours: 8},
		{Name: model.Shift12H1, StartTime: "06:00", EndTime: "18:00", DurationHours: 12},
		{Name: model.Shift12H2, StartTime: "18:00", EndTime: "06:00", DurationHours: 12},
	}
	if _, err := db.NewInsert().Model(&shifts).Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to seed shifts")
	}
	log.Info().Int("shifts", len(shifts)).Msg("seeded shift catalog")
	return nil
}
