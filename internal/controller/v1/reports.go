package v1

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/sevenkilo/tracker-backend/internal/server/svr"
	"github.com/sevenkilo/tracker-backend/internal/service"
)

type ReportsController struct {
	fx.In

	AlertService       *service.Alert
	TrendService       *service.Trend
	SummaryService     *service.Summary
	DowntimeService    *service.Downtime
	UtilizationService *service.Utilization
}

func RegisterReports(v1 *svr.V1, c ReportsController, charts ChartsController, pdf PDFController) {
	reports := v1.Group("/reports")
	reports.Get("/dashboard", c.Dashboard)
	reports.Get("/daily", c.DailySummary)
	reports.Get("/weekly", c.WeeklySummary)
	reports.Get("/weekly/pdf", pdf.WeeklyReportPDF)
	reports.Get("/oee", c.OEETrend)
	reports.Get("/utilization", c.MachineUtilization)
	reports.Get("/downtime/pareto", c.DowntimePareto)

	chartsGroup := v1.Group("/charts")
	chartsGroup.Get("/oee", charts.OEEChart)
	chartsGroup.Get("/product-trend", charts.ProductTrendChart)
	chartsGroup.Get("/product-trend/partial", charts.ProductTrendPartial)
}

// Dashboard aggregates what the landing page shows: current alerts, today's
// summary, this week's summary, the 7-day OEE trend and the top downtime
// causes.
func (c *ReportsController) Dashboard(ctx *fiber.Ctx) error {
	rctx := ctx.UserContext()
	today := time.Now().UTC().Truncate(24 * time.Hour)

	alerts, err := c.AlertService.GetRecentAlerts(rctx, 1)
	if err != nil {
		return err
	}
	todaySummary, err := c.SummaryService.GetDailySummary(rctx, today, 0)
	if err != nil {
		return err
	}
	weekSummary, err := c.SummaryService.GetWeeklySummary(rctx, service.WeekStartOf(today), 0)
	if err != nil {
		return err
	}
	oeeTrend, err := c.TrendService.GetOEETrend(rctx, today.AddDate(0, 0, -6), today, 0)
	if err != nil {
		return err
	}
	topDowntime, err := c.DowntimeService.GetTopReasons(rctx, today.AddDate(0, 0, -6), today, 0, 5)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"alerts":      alerts,
		"today":       todaySummary,
		"week":        weekSummary,
		"oeeTrend":    oeeTrend,
		"topDowntime": topDowntime,
	})
}

func (c *ReportsController) DailySummary(ctx *fiber.Ctx) error {
	date, err := queryDate(ctx, "date", time.Now().UTC().Truncate(24*time.Hour))
	if err != nil {
		return err
	}
	lineID, err := queryLineID(ctx)
	if err != nil {
		return err
	}

	summary, err := c.SummaryService.GetDailySummary(ctx.UserContext(), date, lineID)
	if err != nil {
		return err
	}
	return ctx.JSON(summary)
}

// WeeklySummary also carries the product trend and totals for the week, the
// same payload the weekly report page renders.
func (c *ReportsController) WeeklySummary(ctx *fiber.Ctx) error {
	weekStart, err := queryDate(ctx, "week_start", service.WeekStartOf(time.Now().UTC()))
	if err != nil {
		return err
	}
	lineID, err := queryLineID(ctx)
	if err != nil {
		return err
	}

	rctx := ctx.UserContext()
	summary, err := c.SummaryService.GetWeeklySummary(rctx, weekStart, lineID)
	if err != nil {
		return err
	}
	trend, err := c.TrendService.GetProductTrend(rctx, weekStart, weekStart.AddDate(0, 0, 6), lineID)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"summary":      summary,
		"productTrend": trend,
	})
}

func (c *ReportsController) OEETrend(ctx *fiber.Ctx) error {
	start, end, err := queryDateRange(ctx, 30)
	if err != nil {
		return err
	}
	lineID, err := queryLineID(ctx)
	if err != nil {
		return err
	}

	rows, err := c.TrendService.GetOEETrend(ctx.UserContext(), start, end, lineID)
	if err != nil {
		return err
	}
	return ctx.JSON(rows)
}

func (c *ReportsController) MachineUtilization(ctx *fiber.Ctx) error {
	start, end, err := queryDateRange(ctx, 30)
	if err != nil {
		return err
	}
	lineID, err := queryLineID(ctx)
	if err != nil {
		return err
	}

	utilization, err := c.UtilizationService.GetMachineUtilization(ctx.UserContext(), start, end, lineID)
	if err != nil {
		return err
	}
	return ctx.JSON(utilization)
}

func (c *ReportsController) DowntimePareto(ctx *fiber.Ctx) error {
	start, end, err := queryDateRange(ctx, 30)
	if err != nil {
		return err
	}
	lineID, err := queryLineID(ctx)
	if err != nil {
		return err
	}

	pareto, err := c.DowntimeService.GetPareto(ctx.UserContext(), start, end, lineID)
	if err != nil {
		return err
	}
	return ctx.JSON(pareto)
}
