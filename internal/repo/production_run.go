package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/repo/selector"
)

type ProductionRun struct {
	db  *bun.DB
	sel selector.Q[model.ProductionRun]
}

func NewProductionRun(db *bun.DB) *ProductionRun {
	return &ProductionRun{
		db:  db,
		sel: selector.New[model.ProductionRun](db),
	}
}

func (r *ProductionRun) GetRunByID(ctx context.Context, runID int) (*model.ProductionRun, error) {
	return r.sel.One(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("pr.run_id = ?", runID).
			Relation("Line").
			Relation("Product").
			Relation("PackageSize").
			Relation("Shift").
			Relation("Packaging").
			Relation("Utility").
			Relation("Report")
	})
}

func (r *ProductionRun) GetActiveRuns(ctx context.Context) ([]*model.ProductionRun, error) {
	return r.sel.Many(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("pr.is_completed = ?", false).
			Relation("Line").
			Relation("Product").
			Relation("Shift").
			Order("pr.date DESC", "pr.production_start DESC")
	})
}

// GetRunsByDate optionally narrows by line (lineID == 0 means all lines) and
// shift name.
func (r *ProductionRun) GetRunsByDate(ctx context.Context, date time.Time, lineID int, shiftName string) ([]*model.ProductionRun, error) {
	return r.sel.Many(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Where("pr.date = ?", date.Format("2006-01-02")).
			Relation("Line").
			Relation("Product").
			Relation("PackageSize").
			Relation("Shift").
			Relation("Report")
		if lineID != 0 {
			q = q.Where("pr.line_id = ?", lineID)
		}
		if shiftName != "" {
			q = q.Join("JOIN shifts AS jsh ON jsh.shift_id = pr.shift_id").
				Where("jsh.name = ?", shiftName)
		}
		return q.Order("pr.production_start ASC")
	})
}

func (r *ProductionRun) GetRunsByDateRange(ctx context.Context, start, end time.Time, lineID int) ([]*model.ProductionRun, error) {
	return r.sel.Many(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Where("pr.date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
			Relation("Product").
			Relation("Shift").
			Relation("Report")
		if lineID != 0 {
			q = q.Where("pr.line_id = ?", lineID)
		}
		return q.Order("pr.date ASC", "pr.production_start ASC")
	})
}

// GetCompletedRunsMissingReports feeds the calc worker: completed runs that
// either have no report yet or were updated after their last calculation.
func (r *ProductionRun) GetCompletedRunsMissingReports(ctx context.Context) ([]*model.ProductionRun, error) {
	return r.sel.Many(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("pr.is_completed = ?", true).
			Relation("Line").
			Relation("Product").
			Relation("PackageSize").
			Relation("Shift").
			Relation("Packaging").
			Relation("Utility").
			Relation("Report").
			Where("report.report_id IS NULL OR report.calculated_at < pr.updated_at").
			Order("pr.run_id ASC")
	})
}

func (r *ProductionRun) CreateRun(ctx context.Context, run *model.ProductionRun) error {
	_, err := r.db.NewInsert().Model(run).Exec(ctx)
	return err
}

func (r *ProductionRun) CompleteRun(ctx context.Context, runID int, productionEnd time.Time) error {
	_, err := r.db.NewUpdate().
		Model((*model.ProductionRun)(nil)).
		Set("is_completed = ?", true).
		Set("production_end = ?", productionEnd).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("run_id = ?", runID).
		Exec(ctx)
	return err
}

func (r *ProductionRun) UpdateDowntimeTotal(ctx context.Context, runID int, totalMinutes int) error {
	_, err := r.db.NewUpdate().
		Model((*model.ProductionRun)(nil)).
		Set("total_downtime_minutes = ?", totalMinutes).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("run_id = ?", runID).
		Exec(ctx)
	return err
}

// AggregateTotals computes the shared summary columns for a date range.
func (r *ProductionRun) AggregateTotals(ctx context.Context, start, end time.Time, lineID int) (*model.ProductionTotals, error) {
	var totals model.ProductionTotals
	q := r.db.NewSelect().
		Model((*model.ProductionRun)(nil)).
		ColumnExpr("COALESCE(SUM(pr.good_products_pack), 0) AS total_production").
		ColumnExpr("COALESCE(SUM(pr.total_downtime_minutes), 0) AS total_downtime").
		ColumnExpr("AVG(rep.oee) AS avg_oee").
		ColumnExpr("COUNT(pr.run_id) AS total_runs").
		ColumnExpr("COALESCE(SUM(pr.final_syrup_volume), 0) AS total_syrup").
		Join("LEFT JOIN production_reports AS rep ON rep.run_id = pr.run_id").
		Where("pr.date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02"))
	if lineID != 0 {
		q = q.Where("pr.line_id = ?", lineID)
	}
	if err := q.Scan(ctx, &totals); err != nil {
		return nil, err
	}
	return &totals, nil
}

// AggregateProductDailyOutputs returns per-product, per-date production sums;
// the raw rows behind the product trend chart.
func (r *ProductionRun) AggregateProductDailyOutputs(ctx context.Context, start, end time.Time, lineID int) ([]model.ProductDailyOutput, error) {
	var rows []model.ProductDailyOutput
	q := r.db.NewSelect().
		Model((*model.ProductionRun)(nil)).
		ColumnExpr("pr.date AS date").
		ColumnExpr("pr.product_id AS product_id").
		ColumnExpr("p.name AS product_name").
		ColumnExpr("p.product_code AS product_code").
		ColumnExpr("COALESCE(SUM(pr.good_products_pack), 0) AS total_packs").
		Join("JOIN products AS p ON p.product_id = pr.product_id").
		Where("pr.date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		GroupExpr("pr.date, pr.product_id, p.name, p.product_code").
		OrderExpr("pr.date ASC, pr.product_id ASC")
	if lineID != 0 {
		q = q.Where("pr.line_id = ?", lineID)
	}
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// AggregatePlannedAndDowntime sums planned production minutes and downtime for
// the utilization report. Open runs fall back to the shift duration, matching
// PlannedProductionTimeMinutes.
func (r *ProductionRun) AggregatePlannedAndDowntime(ctx context.Context, start, end time.Time, lineID int) (planned float64, downtime int, err error) {
	var row struct {
		Planned  float64 `bun:"planned"`
		Downtime int     `bun:"downtime"`
	}
	err = r.db.NewSelect().
		Model((*model.ProductionRun)(nil)).
		ColumnExpr(`COALESCE(SUM(
			CASE
				WHEN pr.production_end IS NOT NULL
				THEN (JULIANDAY(pr.production_end) - JULIANDAY(pr.production_start)) * 24 * 60
				ELSE sh.duration_hours * 60
			END), 0) AS planned`).
		ColumnExpr("COALESCE(SUM(pr.total_downtime_minutes), 0) AS downtime").
		Join("JOIN shifts AS sh ON sh.shift_id = pr.shift_id").
		Where("pr.line_id = ?", lineID).
		Where("pr.date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Scan(ctx, &row)
	if err != nil {
		return 0, 0, err
	}
	return row.Planned, row.Downtime, nil
}
