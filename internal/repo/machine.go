package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/repo/selector"
)

type Machine struct {
	db      *bun.DB
	sel     selector.Q[model.Machine]
	codeSel selector.Q[model.DowntimeCode]
}

func NewMachine(db *bun.DB) *Machine {
	return &Machine{
		db:      db,
		sel:     selector.New[model.Machine](db),
		codeSel: selector.New[model.DowntimeCode](db),
	}
}

func (r *Machine) GetActiveMachinesByLine(ctx context.Context, lineID int) ([]*model.Machine, error) {
	return r.sel.Many(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("line_id = ?", lineID).
			Where("is_active = ?", true).
			Order("machine_name ASC")
	})
}

// GetMainMachineByLine returns the line's first active machine, whose rated
// output drives the performance calculation.
func (r *Machine) GetMainMachineByLine(ctx context.Context, lineID int) (*model.Machine, error) {
	return r.sel.One(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("line_id = ?", lineID).
			Where("is_active = ?", true).
			Order("machine_id ASC").
			Limit(1)
	})
}

func (r *Machine) GetDowntimeCodeByID(ctx context.Context, codeID int) (*model.DowntimeCode, error) {
	return r.codeSel.One(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("code_id = ?", codeID)
	})
}
