// Package chartjs builds declarative Chart.js configurations and renders the
// HTML fragment that bootstraps them. It performs no aggregation itself; the
// trend services hand it chart-ready data.
package chartjs

import (
	"github.com/pkg/errors"

	"github.com/sevenkilo/tracker-backend/internal/model"
)

const (
	DefaultChartID     = "productTrendChart"
	DefaultHeightClass = "h-96"
)

// palette cycles through the dashboard accent colors for bar datasets.
var palette = []struct{ border, background string }{
	{"rgb(59, 130, 246)", "rgba(59, 130, 246, 0.5)"},
	{"rgb(16, 185, 129)", "rgba(16, 185, 129, 0.5)"},
	{"rgb(245, 158, 11)", "rgba(245, 158, 11, 0.5)"},
	{"rgb(239, 68, 68)", "rgba(239, 68, 68, 0.5)"},
	{"rgb(139, 92, 246)", "rgba(139, 92, 246, 0.5)"},
	{"rgb(236, 72, 153)", "rgba(236, 72, 153, 0.5)"},
	{"rgb(20, 184, 166)", "rgba(20, 184, 166, 0.5)"},
	{"rgb(249, 115, 22)", "rgba(249, 115, 22, 0.5)"},
}

// Options are the display overrides a caller may pass when embedding a chart.
// The default canvas id collides when the partial is included twice on one
// page; overriding ChartID is the caller's responsibility.
type Options struct {
	ChartID     string
	Title       string
	HeightClass string
	// ShowLegend defaults to true; set to a false pointer to hide it.
	ShowLegend *bool
}

func (o Options) chartID() string {
	if o.ChartID == "" {
		return DefaultChartID
	}
	return o.ChartID
}

func (o Options) heightClass() string {
	if o.HeightClass == "" {
		return DefaultHeightClass
	}
	return o.HeightClass
}

func (o Options) showLegend() bool {
	return o.ShowLegend == nil || *o.ShowLegend
}

type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	BorderWidth     int       `json:"borderWidth,omitempty"`
	Tension         float64   `json:"tension,omitempty"`
}

type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Legend struct {
	Display bool `json:"display"`
}

type Title struct {
	Display bool   `json:"display"`
	Text    string `json:"text,omitempty"`
}

type Plugins struct {
	Legend Legend `json:"legend"`
	Title  Title  `json:"title"`
}

type Axis struct {
	BeginAtZero bool `json:"beginAtZero"`
	Stacked     bool `json:"stacked,omitempty"`
}

type ChartOptions struct {
	Responsive          bool            `json:"responsive"`
	MaintainAspectRatio bool            `json:"maintainAspectRatio"`
	Plugins             Plugins         `json:"plugins"`
	Scales              map[string]Axis `json:"scales,omitempty"`
}

type Config struct {
	Type    string       `json:"type"`
	Data    Data         `json:"data"`
	Options ChartOptions `json:"options"`
}

func baseOptions(opts Options) ChartOptions {
	return ChartOptions{
		Responsive:          true,
		MaintainAspectRatio: false,
		Plugins: Plugins{
			Legend: Legend{Display: opts.showLegend()},
			Title:  Title{Display: opts.Title != "", Text: opts.Title},
		},
		Scales: map[string]Axis{
			"y": {BeginAtZero: true},
		},
	}
}

// BarConfig shapes a product trend into a bar chart configuration. Every
// dataset must be positionally aligned with the labels; a length mismatch
// means the source rows were built wrong and is rejected.
func BarConfig(trend *model.ProductTrend, opts Options) (*Config, error) {
	labels := trend.ChartData.Labels
	datasets := make([]Dataset, 0, len(trend.ChartData.Datasets))
	for i, series := range trend.ChartData.Datasets {
		if len(series.Data) != len(labels) {
			return nil, errors.Errorf("dataset %q has %d points for %d labels", series.Label, len(series.Data), len(labels))
		}
		color := palette[i%len(palette)]
		data := make([]float64, len(series.Data))
		for j, v := range series.Data {
			data[j] = float64(v)
		}
		datasets = append(datasets, Dataset{
			Label:           series.Label,
			Data:            data,
			BackgroundColor: color.background,
			BorderColor:     color.border,
			BorderWidth:     1,
		})
	}

	return &Config{
		Type: "bar",
		Data: Data{
			Labels:   labels,
			Datasets: datasets,
		},
		Options: baseOptions(opts),
	}, nil
}

// OEELineConfig shapes the daily OEE trend into the four-series line chart.
func OEELineConfig(rows []model.OEEDailyRow, opts Options) *Config {
	labels := make([]string, len(rows))
	oee := make([]float64, len(rows))
	availability := make([]float64, len(rows))
	performance := make([]float64, len(rows))
	quality := make([]float64, len(rows))
	for i, row := range rows {
		labels[i] = row.Date.Format("2006-01-02")
		oee[i] = row.AvgOEE
		availability[i] = row.AvgAvailability
		performance[i] = row.AvgPerformance
		quality[i] = row.AvgQuality
	}

	return &Config{
		Type: "line",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{
				{Label: "OEE %", Data: oee, BorderColor: "rgb(59, 130, 246)", BackgroundColor: "rgba(59, 130, 246, 0.1)", Tension: 0.1},
				{Label: "Availability %", Data: availability, BorderColor: "rgb(16, 185, 129)", BackgroundColor: "rgba(16, 185, 129, 0.1)", Tension: 0.1},
				{Label: "Performance %", Data: performance, BorderColor: "rgb(245, 158, 11)", BackgroundColor: "rgba(245, 158, 11, 0.1)", Tension: 0.1},
				{Label: "Quality %", Data: quality, BorderColor: "rgb(239, 68, 68)", BackgroundColor: "rgba(239, 68, 68, 0.1)", Tension: 0.1},
			},
		},
		Options: baseOptions(opts),
	}
}
