package repo

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/repo/selector"
)

type StopEvent struct {
	db  *bun.DB
	sel selector.Q[model.StopEvent]
}

func NewStopEvent(db *bun.DB) *StopEvent {
	return &StopEvent{
		db:  db,
		sel: selector.New[model.StopEvent](db),
	}
}

func (r *StopEvent) GetEventsByRun(ctx context.Context, runID int) ([]*model.StopEvent, error) {
	return r.sel.Many(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("se.run_id = ?", runID).
			Relation("Machine").
			Relation("Code").
			Order("se.timestamp ASC")
	})
}

// CreateEvent inserts the event and folds its duration into the owning run's
// downtime total in one transaction.
func (r *StopEvent) CreateEvent(ctx context.Context, event *model.StopEvent) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(event).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewUpdate().
			Model((*model.ProductionRun)(nil)).
			Set("total_downtime_minutes = (SELECT COALESCE(SUM(duration_minutes), 0) FROM stop_events WHERE run_id = ?)", event.RunID).
			Set("updated_at = CURRENT_TIMESTAMP").
			Where("run_id = ?", event.RunID).
			Exec(ctx)
		return err
	})
}

// AggregateDowntimeReasons groups downtime by reason for the Pareto report.
func (r *StopEvent) AggregateDowntimeReasons(ctx context.Context, start, end time.Time, lineID int) ([]model.DowntimeReason, error) {
	var rows []model.DowntimeReason
	q := r.db.NewSelect().
		Model((*model.StopEvent)(nil)).
		ColumnExpr("dc.code AS code").
		ColumnExpr("dc.reason AS code_reason").
		ColumnExpr("se.reason AS reason").
		ColumnExpr("m.machine_name AS machine_name").
		ColumnExpr("COALESCE(SUM(se.duration_minutes), 0) AS total_duration").
		ColumnExpr("COUNT(se.event_id) AS occurrence_count").
		Join("JOIN production_runs AS pr ON pr.run_id = se.run_id").
		Join("JOIN downtime_codes AS dc ON dc.code_id = se.code_id").
		Join("JOIN machines AS m ON m.machine_id = se.machine_id").
		Where("pr.date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		GroupExpr("dc.code, dc.reason, se.reason, m.machine_name").
		OrderExpr("total_duration DESC")
	if lineID != 0 {
		q = q.Where("pr.line_id = ?", lineID)
	}
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
