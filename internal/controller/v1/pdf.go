package v1

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/sevenkilo/tracker-backend/internal/model"
	"github.com/sevenkilo/tracker-backend/internal/pkg/chartjs"
	"github.com/sevenkilo/tracker-backend/internal/service"
)

//go:embed templates/weekly_report.html
var pdfTemplateFS embed.FS

var weeklyReportTmpl = template.Must(template.ParseFS(pdfTemplateFS, "templates/weekly_report.html"))

type PDFController struct {
	fx.In

	Exporter       *service.PDFExporter
	TrendService   *service.Trend
	SummaryService *service.Summary
}

type weeklyReportPage struct {
	WeekStart    string
	WeekEnd      string
	Summary      *model.WeeklySummary
	TrendPartial template.HTML
	OEEPartial   template.HTML
}

// WeeklyReportPDF renders the weekly report page headlessly and returns it as
// an A4 landscape PDF attachment.
func (c *PDFController) WeeklyReportPDF(ctx *fiber.Ctx) error {
	weekStart, err := queryDate(ctx, "week_start", service.WeekStartOf(ctx.Context().Time()))
	if err != nil {
		return err
	}
	lineID, err := queryLineID(ctx)
	if err != nil {
		return err
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	rctx := ctx.UserContext()
	summary, err := c.SummaryService.GetWeeklySummary(rctx, weekStart, lineID)
	if err != nil {
		return err
	}
	trend, err := c.TrendService.GetProductTrend(rctx, weekStart, weekEnd, lineID)
	if err != nil {
		return err
	}
	oeeRows, err := c.TrendService.GetOEETrend(rctx, weekStart, weekEnd, lineID)
	if err != nil {
		return err
	}

	var trendBuf bytes.Buffer
	if err := chartjs.RenderPartial(&trendBuf, trend, chartjs.Options{
		ChartID: "weeklyProductTrend",
		Title:   "Production by Product",
	}); err != nil {
		return err
	}

	oeeConfig, err := chartjs.Marshal(chartjs.OEELineConfig(oeeRows, chartjs.Options{
		Title: "OEE Trend",
	}))
	if err != nil {
		return err
	}

	var page bytes.Buffer
	err = weeklyReportTmpl.Execute(&page, weeklyReportPage{
		WeekStart:    weekStart.Format(dateLayout),
		WeekEnd:      weekEnd.Format(dateLayout),
		Summary:      summary,
		TrendPartial: template.HTML(trendBuf.String()),
		OEEPartial:   template.HTML(fmt.Sprintf(`<div class="chart-box"><canvas id="weeklyOee"></canvas></div><script>new Chart(document.getElementById("weeklyOee"), %s);</script>`, oeeConfig)),
	})
	if err != nil {
		return err
	}

	pdf, err := c.Exporter.RenderHTML(rctx, page.String())
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("weekly_report_%s.pdf", weekStart.Format("20060102"))
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return ctx.Send(pdf)
}
