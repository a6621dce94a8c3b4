package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/repo/selector"
)

type ProductionLine struct {
	db  *bun.DB
	sel selector.Q[model.ProductionLine]
}

func NewProductionLine(db *bun.DB) *ProductionLine {
	return &ProductionLine{
		db:  db,
		sel: selector.New[model.ProductionLine](db),
	}
}

func (r *ProductionLine) GetActiveLines(ctx context.Context) ([]*model.ProductionLine, error) {
	return r.sel.Many(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("is_active = ?", true).Order("line_id ASC")
	})
}

func (r *ProductionLine) GetLineByID(ctx context.Context, lineID int) (*model.ProductionLine, error) {
	return r.sel.One(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("line_id = ?", lineID)
	})
}
