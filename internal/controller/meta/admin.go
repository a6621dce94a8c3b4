package meta

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/sevenkilo/tracker-backend/internal/model/cache"
	"github.com/sevenkilo/tracker-backend/internal/pkg/apperr"
	"github.com/sevenkilo/tracker-backend/internal/server/svr"
	"github.com/sevenkilo/tracker-backend/internal/service"
	"github.com/sevenkilo/tracker-backend/internal/util/rekuest"
)

const DateLayout = "2006-01-02"

type AdminController struct {
	fx.In

	ReportService *service.Report
	TrendService  *service.Trend
	BackupService *service.Backup
}

func RegisterAdmin(admin *svr.Admin, c AdminController) {
	admin.Post("/refresh/reports", c.RefreshReports)
	admin.Get("/refresh/trend", c.RefreshTrend)
	admin.Post("/purge", c.PurgeCache)
	admin.Post("/backup", c.TriggerBackup)
}

type RefreshReportsRequest struct {
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
	// Force recalculates even runs whose report is already up to date.
	Force bool `json:"force"`
}

func (c *AdminController) RefreshReports(ctx *fiber.Ctx) error {
	var request RefreshReportsRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	start, _ := time.Parse(DateLayout, request.StartDate)
	end, _ := time.Parse(DateLayout, request.EndDate)
	if end.Before(start) {
		return apperr.ErrInvalidReq.Msg("endDate is before startDate")
	}

	count, err := c.ReportService.RefreshRange(ctx.UserContext(), start, end, request.Force)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"recalculated": count,
	})
}

func (c *AdminController) RefreshTrend(ctx *fiber.Ctx) error {
	if err := c.TrendService.RefreshCaches(ctx.UserContext()); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"status": "ok",
	})
}

func (c *AdminController) PurgeCache(ctx *fiber.Ctx) error {
	if err := cache.Purge(); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"status": "ok",
	})
}

func (c *AdminController) TriggerBackup(ctx *fiber.Ctx) error {
	if err := c.BackupService.Run(ctx.UserContext()); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{
		"status": "ok",
	})
}
