package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/repo/selector"
)

type PackageSize struct {
	db  *bun.DB
	sel selector.Q[model.PackageSize]
}

func NewPackageSize(db *bun.DB) *PackageSize {
	return &PackageSize{
		db:  db,
		sel: selector.New[model.PackageSize](db),
	}
}

func (r *PackageSize) GetPackageSizes(ctx context.Context) ([]*model.PackageSize, error) {
	return r.sel.Many(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("package_size_id ASC")
	})
}

func (r *PackageSize) GetPackageSizeByID(ctx context.Context, id int) (*model.PackageSize, error) {
	return r.sel.One(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("package_size_id = ?", id)
	})
}
