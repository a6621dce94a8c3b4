package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/repo/selector"
)

type ManufacturingOrder struct {
	db  *bun.DB
	sel selector.Q[model.ManufacturingOrder]
}

func NewManufacturingOrder(db *bun.DB) *ManufacturingOrder {
	return &ManufacturingOrder{
		db:  db,
		sel: selector.New[model.ManufacturingOrder](db),
	}
}

func (r *ManufacturingOrder) GetOrderByID(ctx context.Context, orderID int) (*model.ManufacturingOrder, error) {
	return r.sel.One(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("order_id = ?", orderID)
	})
}

func (r *ManufacturingOrder) GetOpenOrders(ctx context.Context) ([]*model.ManufacturingOrder, error) {
	return r.sel.Many(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("status IN (?)", bun.In([]string{model.OrderStatusPending, model.OrderStatusInProgress})).
			Order("order_date ASC")
	})
}

func (r *ManufacturingOrder) UpdateStatus(ctx context.Context, orderID int, status string) error {
	_, err := r.db.NewUpdate().
		Model((*model.ManufacturingOrder)(nil)).
		Set("status = ?", status).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("order_id = ?", orderID).
		Exec(ctx)
	return err
}
