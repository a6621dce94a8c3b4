package v1

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sevenkilo/tracker-backend/internal/pkg/apperr"
)

const dateLayout = "2006-01-02"

func queryDate(ctx *fiber.Ctx, name string, fallback time.Time) (time.Time, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, apperr.ErrInvalidReq.Msg("invalid %s: expected YYYY-MM-DD, got %q", name, raw)
	}
	return d, nil
}

// queryDateRange reads start/end with a default window of the trailing
// `defaultDays` days ending today.
func queryDateRange(ctx *fiber.Ctx, defaultDays int) (start, end time.Time, err error) {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	end, err = queryDate(ctx, "end", now)
	if err != nil {
		return
	}
	start, err = queryDate(ctx, "start", end.AddDate(0, 0, -defaultDays+1))
	if err != nil {
		return
	}
	if end.Before(start) {
		err = apperr.ErrInvalidReq.Msg("end is before start")
	}
	return
}

func queryLineID(ctx *fiber.Ctx) (int, error) {
	id := ctx.QueryInt("line_id", 0)
	if id < 0 {
		return 0, apperr.ErrInvalidReq.Msg("invalid line_id")
	}
	return id, nil
}
