package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/repo/selector"
)

type Shift struct {
	db  *bun.DB
	sel selector.Q[model.Shift]
}

func NewShift(db *bun.DB) *Shift {
	return &Shift{
		db:  db,
		sel: selector.New[model.Shift](db),
	}
}

func (r *Shift) GetShifts(ctx context.Context) ([]*model.Shift, error) {
	return r.sel.Many(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("shift_id ASC")
	})
}

func (r *Shift) GetShiftByID(ctx context.Context, shiftID int) (*model.Shift, error) {
	return r.sel.One(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("shift_id = ?", shiftID)
	})
}
