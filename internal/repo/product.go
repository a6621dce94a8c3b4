package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/repo/selector"
)

type Product struct {
	db  *bun.DB
	sel selector.Q[model.Product]
}

func NewProduct(db *bun.DB) *Product {
	return &Product{
		db:  db,
		sel: selector.New[model.Product](db),
	}
}

func (r *Product) GetProducts(ctx context.Context) ([]*model.Product, error) {
	return r.sel.Many(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("product_id ASC")
	})
}

func (r *Product) GetProductByID(ctx context.Context, productID int) (*model.Product, error) {
	return r.sel.One(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("product_id = ?", productID)
	})
}

func (r *Product) GetProductByCode(ctx context.Context, code string) (*model.Product, error) {
	return r.sel.One(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("product_code = ?", code)
	})
}
