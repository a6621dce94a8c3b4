package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/repo/selector"
)

type ProductionReport struct {
	db  *bun.DB
	sel selector.Q[model.ProductionReport]
}

func NewProductionReport(db *bun.DB) *ProductionReport {
	return &ProductionReport{
		db:  db,
		sel: selector.New[model.ProductionReport](db),
	}
}

func (r *ProductionReport) GetReportByRun(ctx context.Context, runID int) (*model.ProductionReport, error) {
	return r.sel.One(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("rep.run_id = ?", runID)
	})
}

// UpsertReport writes freshly calculated metrics, replacing any previous
// report for the same run.
func (r *ProductionReport) UpsertReport(ctx context.Context, report *model.ProductionReport) error {
	_, err := r.db.NewInsert().
		Model(report).
		On("CONFLICT (run_id) DO UPDATE").
		Set("syrup_yield_percentage = EXCLUDED.syrup_yield_percentage").
		Set("preform_yield_percentage = EXCLUDED.preform_yield_percentage").
		Set("bottle_reject_percentage = EXCLUDED.bottle_reject_percentage").
		Set("co2_utilization_percent = EXCLUDED.co2_utilization_percent").
		Set("availability = EXCLUDED.availability").
		Set("performance = EXCLUDED.performance").
		Set("quality = EXCLUDED.quality").
		Set("oee = EXCLUDED.oee").
		Set("calculated_at = CURRENT_TIMESTAMP").
		Exec(ctx)
	return err
}

// AggregateOEEDailyRows returns per-date averaged OEE components for the OEE
// trend chart, computed over completed runs that have a report.
func (r *ProductionReport) AggregateOEEDailyRows(ctx context.Context, start, end time.Time, lineID int) ([]model.OEEDailyRow, error) {
	var rows []model.OEEDailyRow
	q := r.db.NewSelect().
		Model((*model.ProductionReport)(nil)).
		ColumnExpr("pr.date AS date").
		ColumnExpr("AVG(rep.oee) AS avg_oee").
		ColumnExpr("AVG(rep.availability) AS avg_availability").
		ColumnExpr("AVG(rep.performance) AS avg_performance").
		ColumnExpr("AVG(rep.quality) AS avg_quality").
		Join("JOIN production_runs AS pr ON pr.run_id = rep.run_id").
		Where("pr.date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		GroupExpr("pr.date").
		OrderExpr("pr.date ASC")
	if lineID != 0 {
		q = q.Where("pr.line_id = ?", lineID)
	}
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
