package selector

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/sevenkilo/tracker-backend/internal/pkg/apperr"
)

// Mod narrows a base SELECT on the query's model to the rows a repo method
// wants.
type Mod func(q *bun.SelectQuery) *bun.SelectQuery

// Q runs typed SELECTs for one model, translating the driver's empty-result
// error into the application's not-found sentinel.
type Q[T any] struct {
	db *bun.DB
}

func New[T any](db *bun.DB) Q[T] {
	return Q[T]{db: db}
}

func (q Q[T]) One(ctx context.Context, mod Mod) (*T, error) {
	var row T
	if err := mod(q.db.NewSelect().Model(&row)).Scan(ctx); err != nil {
		return nil, mapErr(err)
	}
	return &row, nil
}

func (q Q[T]) Many(ctx context.Context, mod Mod) ([]*T, error) {
	var rows []*T
	if err := mod(q.db.NewSelect().Model(&rows)).Scan(ctx); err != nil {
		return nil, mapErr(err)
	}
	return rows, nil
}

func mapErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.ErrNotFound
	}
	return err
}
