package chartjs

import (
	"embed"
	"html/template"
	"io"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/sevenkilo/tracker-backend/internal/model"
)

//go:embed templates/product_trend_chart.html
var templateFS embed.FS

var partial = template.Must(template.ParseFS(templateFS, "templates/product_trend_chart.html"))

// Marshal serializes a config for inline script embedding.
func Marshal(config *Config) (string, error) {
	raw, err := json.Marshal(config)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal chart config")
	}
	return string(raw), nil
}

type partialData struct {
	HasData     bool
	ChartID     string
	Title       string
	HeightClass string
	ConfigJSON  template.JS
}

// RenderPartial writes the chart fragment: a canvas plus its Chart.js
// bootstrap, or the informative empty state when the trend is nil or carries
// zero products. A zero-dataset chart is never emitted.
func RenderPartial(w io.Writer, trend *model.ProductTrend, opts Options) error {
	data := partialData{
		ChartID:     opts.chartID(),
		Title:       opts.Title,
		HeightClass: opts.heightClass(),
	}

	if trend != nil && trend.TotalProducts > 0 {
		config, err := BarConfig(trend, opts)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(config)
		if err != nil {
			return errors.Wrap(err, "failed to marshal chart config")
		}
		data.HasData = true
		data.ConfigJSON = template.JS(raw)
	}

	return partial.Execute(w, data)
}
