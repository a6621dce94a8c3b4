package v1

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/sevenkilo/tracker-backend/internal/pkg/chartjs"
	"github.com/sevenkilo/tracker-backend/internal/service"
)

type ChartsController struct {
	fx.In

	TrendService *service.Trend
}

func (c *ChartsController) OEEChart(ctx *fiber.Ctx) error {
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
	return ctx.JSON(chartjs.OEELineConfig(rows, chartjs.Options{
		Title: ctx.Query("title"),
	}))
}

func (c *ChartsController) ProductTrendChart(ctx *fiber.Ctx) error {
	start, end, err := queryDateRange(ctx, 7)
	if err != nil {
		return err
	}
	lineID, err := queryLineID(ctx)
	if err != nil {
		return err
	}

	trend, err := c.TrendService.GetProductTrend(ctx.UserContext(), start, end, lineID)
	if err != nil {
		return err
	}
	config, err := chartjs.BarConfig(trend, chartjs.Options{
		Title: ctx.Query("title"),
	})
	if err != nil {
		return err
	}
	return ctx.JSON(config)
}

// ProductTrendPartial serves the embeddable HTML fragment: canvas plus
// Chart.js bootstrap, or the empty state when the window has no production.
func (c *ChartsController) ProductTrendPartial(ctx *fiber.Ctx) error {
	start, end, err := queryDateRange(ctx, 7)
	if err != nil {
		return err
	}
	lineID, err := queryLineID(ctx)
	if err != nil {
		return err
	}

	trend, err := c.TrendService.GetProductTrend(ctx.UserContext(), start, end, lineID)
	if err != nil {
		return err
	}

	opts := chartjs.Options{
		ChartID:     ctx.Query("chart_id"),
		Title:       ctx.Query("title"),
		HeightClass: ctx.Query("chart_height"),
	}
	if ctx.Query("show_legend") == "false" {
		hide := false
		opts.ShowLegend = &hide
	}

	var buf bytes.Buffer
	if err := chartjs.RenderPartial(&buf, trend, opts); err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.Send(buf.Bytes())
}
