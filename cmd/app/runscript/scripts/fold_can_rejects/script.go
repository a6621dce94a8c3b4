package script_fold_can_rejects

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
)

// The tracker used to record filled-can rejects in their own column before
// they were merged into the generic product reject count. Rows written by old
// clients still carry the legacy column; this folds them in exactly once.
func run(c *cli.Context, db *bun.DB, dryRun bool) error {
	ctx := c.Context

	var affected []struct {
		ID               int64 `bun:"id"`
		QtyProductReject int64 `bun:"qty_product_reject"`
		QtyCanReject     int64 `bun:"qty_filled_can_reject"`
	}
	err := db.NewSelect().
		Table("packaging_materials").
		Column("id", "qty_product_reject", "qty_filled_can_reject").
		Where("qty_filled_can_reject IS NOT NULL").
		Where("qty_filled_can_reject != 0").
		Scan(ctx, &affected)
	if err != nil {
		return errors.Wrap(err, "failed to list legacy rows")
	}

	log.Info().Int("rows", len(affected)).Bool("dry_run", dryRun).Msg("script: fold_can_rejects: scanned")
	if dryRun || len(affected) == 0 {
		return nil
	}

	return db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, row := range affected {
			_, err := tx.NewUpdate().
				Table("packaging_materials").
				Set("qty_product_reject = ?", row.QtyProductReject+row.QtyCanReject).
				Set("qty_filled_can_reject = 0").
				Where("id = ?", row.ID).
				Exec(ctx)
			if err != nil {
				return errors.Wrapf(err, "failed to update packaging material %d", row.ID)
			}
		}
		log.Info().Int("rows", len(affected)).Msg("script: fold_can_rejects: finished")
		return nil
	})
}
